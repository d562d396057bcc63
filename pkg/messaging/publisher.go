// Package messaging defines the event publishing contract used by the
// services to announce purchase lifecycle changes.
package messaging

import (
	"context"
)

const (
	PurchasesCreatedSubject = "purchases.created"
	PurchasesDeletedSubject = "purchases.customer_deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
