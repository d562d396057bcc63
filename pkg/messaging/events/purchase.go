package events

import (
	"encoding/json"

	"lojabackend/pkg/messaging"
)

// PurchaseCreatedEvent is published after a purchase row is inserted.
type PurchaseCreatedEvent struct {
	PurchaseID int64  `json:"purchase_id"`
	CustomerID int64  `json:"customer_id"`
	Total      string `json:"total"`
	DataHora   string `json:"data_hora"`
}

func (e PurchaseCreatedEvent) Subject() string {
	return messaging.PurchasesCreatedSubject
}

func (e PurchaseCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// CustomerPurchasesDeletedEvent is published after the purchases of a
// customer, identified by their external number, were removed.
type CustomerPurchasesDeletedEvent struct {
	CustomerNumber string `json:"customer_number"`
}

func (e CustomerPurchasesDeletedEvent) Subject() string {
	return messaging.PurchasesDeletedSubject
}

func (e CustomerPurchasesDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
