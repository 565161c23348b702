// Package service holds the catalog business rules: account signup and
// login, product CRUD, and the audit trail fed by domain events.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
	"github.com/spec-kit/catalog-service/pkg/util/validation"
)

const validationMessage = "validation error"

// validate runs tag validation on in and converts failures to a ValidationError.
func validate(in any) error {
	return validateWith(in, nil)
}

// validateWith is validate with extra field errors found before validation
// (for example unparsable numbers). Those replace the tag messages of the
// same field.
func validateWith(in any, malformed map[string][]string) error {
	fields, err := validation.Struct(in)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	for field, msgs := range malformed {
		if fields == nil {
			fields = make(map[string][]string, len(malformed))
		}
		fields[field] = msgs
	}
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewValidationError(validationMessage, fields)
}

// publish hands event to the dispatcher. Delivery failures never fail the caller.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("entity_id", event.EntityID),
			zap.Error(err))
	}
}
