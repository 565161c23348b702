package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp   EventType = "user_signed_up"
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
)

// AllTypes lists every event the services emit.
var AllTypes = []EventType{
	EventUserSignedUp,
	EventProductCreated,
	EventProductUpdated,
	EventProductDeleted,
}

// Actor identifies the authenticated user behind an event.
type Actor struct {
	UserID int64  `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ActorFromIdentity converts an authenticated identity.
func ActorFromIdentity(id domain.Identity) Actor {
	return Actor{UserID: id.UserID, Email: id.Email}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  int64     `json:"entityId"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh ID and the current time.
func NewEvent(eventType EventType, entityID int64, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserSignedUpPayload payload.
type UserSignedUpPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductPayload describes the product state after a create or update.
type ProductPayload struct {
	Name   string               `json:"name"`
	SKU    string               `json:"sku"`
	Price  float64              `json:"price"`
	Stock  int                  `json:"stock"`
	Status domain.ProductStatus `json:"status"`
}

// ProductDeletedPayload payload.
type ProductDeletedPayload struct {
	SKU string `json:"sku"`
}

// NewProductPayload snapshots p.
func NewProductPayload(p *domain.Product) ProductPayload {
	return ProductPayload{Name: p.Name, SKU: p.SKU, Price: p.Price, Stock: p.Stock, Status: p.Status}
}
