package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = fiber.HeaderXRequestID

// RequestID assigns every request an id, reusing one sent by the client.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: "request_id",
	})
}

// RequestLogger logs each completed request and records its metrics. It
// must run outside the error middleware so the final status is known.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		// fasthttp reuses request buffers; labels and log fields outlive the request
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)
		status := c.Response().StatusCode()
		metrics.RecordRequest(route, method, status, latency)

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", utils.CopyString(c.Path())),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("request_id", utils.CopyString(c.GetRespHeader(RequestIDHeader))),
			zap.String("ip", c.IP()),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request completed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
		return err
	}
}
