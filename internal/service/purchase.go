// Package service provides the implementation of purchase-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "lojabackend/internal/errors"
	"lojabackend/internal/store"
	"lojabackend/pkg/messaging"
	"lojabackend/pkg/messaging/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// PurchaseService defines the methods for managing purchases.
// It abstracts the underlying business logic and data access.
type PurchaseService interface {
	// ListAll returns every purchase. The order is storage order and carries
	// no guarantee.
	ListAll(ctx context.Context) ([]PurchaseDto, error)

	// ListForCustomer returns the purchases of one customer.
	// Returns ErrCustomerNotFound if the customer does not exist; an existing
	// customer with zero purchases yields an empty slice, not an error.
	ListForCustomer(ctx context.Context, customerID int64) ([]PurchaseDto, error)

	// Create inserts a new purchase.
	Create(ctx context.Context, purchase PurchaseInputDto) (*PurchaseDto, error)

	// Update overwrites every field of an existing purchase unconditionally.
	// Returns ErrPurchaseNotFound if no purchase exists with the given ID.
	Update(ctx context.Context, id int64, purchase PurchaseInputDto) (*PurchaseDto, error)

	// Delete removes one purchase by id.
	// Returns ErrPurchaseNotFound if nothing was deleted.
	Delete(ctx context.Context, id int64) error

	// DeleteForCustomer removes every purchase of the customer identified by
	// the external number. Returns ErrUnknownCustomer if no customer matches,
	// ErrNoPurchasesForCustomer if the customer owns no purchases.
	DeleteForCustomer(ctx context.Context, number string) error
}

// Service implements PurchaseService and provides methods to manage purchases.
type Service struct {
	purchaseStore    store.PurchaseStore
	publisher        messaging.Publisher
	purchasesCounter metric.Int64Counter
}

// NewService creates a new instance of PurchaseService with the provided store and publisher.
func NewService(purchaseStore store.PurchaseStore, publisher messaging.Publisher) *Service {
	meter := otel.Meter("purchase-service")
	purchasesCounter, err := meter.Int64Counter("purchases_created", metric.WithDescription("Total number of created purchases"))
	if err != nil {
		panic(fmt.Sprintf("failed to create purchases_created counter: %v", err))
	}
	return &Service{
		purchaseStore:    purchaseStore,
		publisher:        publisher,
		purchasesCounter: purchasesCounter,
	}
}

// PurchaseDto represents the data transfer object for a purchase. The json
// keys follow the legacy wire contract of the mobile client.
type PurchaseDto struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"id_cliente"`
	Item       string `json:"compra"`
	Total      string `json:"total"`
	DataHora   string `json:"dataHora"`
}

// PurchaseInputDto represents the data transfer object for creating or
// updating a purchase. Fields are pointers so that "required" means the key
// was present and non-null: zero and empty string are valid values here,
// unlike in the legacy backend which rejected them.
type PurchaseInputDto struct {
	CustomerID *int64  `json:"id_cliente" validate:"required"`
	Item       *string `json:"compra"     validate:"required"`
	Total      *string `json:"total"      validate:"required"`
	DataHora   *string `json:"dataHora"   validate:"required"`
}

func (d *PurchaseInputDto) params() *store.PurchaseParams {
	return &store.PurchaseParams{
		CustomerID: *d.CustomerID,
		Item:       *d.Item,
		Total:      *d.Total,
		DataHora:   *d.DataHora,
	}
}

// ListAll retrieves all purchases and returns them as PurchaseDtos.
func (s *Service) ListAll(ctx context.Context) ([]PurchaseDto, error) {
	purchases, err := s.purchaseStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDtos(purchases), nil
}

// ListForCustomer resolves the customer first and only then queries their
// purchases; an unknown customer never triggers a purchase query.
func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]PurchaseDto, error) {
	customer, err := s.purchaseStore.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseStore.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return toDtos(purchases), nil
}

// Create inserts a new purchase and returns it as a PurchaseDto.
// No foreign-key pre-check is made; a bad id_cliente surfaces as a store error.
func (s *Service) Create(ctx context.Context, purchase PurchaseInputDto) (*PurchaseDto, error) {
	created, err := s.purchaseStore.Create(ctx, purchase.params())
	if err != nil {
		return nil, err
	}

	event := events.PurchaseCreatedEvent{
		PurchaseID: created.ID,
		CustomerID: created.CustomerID,
		Total:      created.Total,
		DataHora:   created.DataHora,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish PurchaseCreatedEvent", "error", err)
	}
	s.purchasesCounter.Add(ctx, 1)

	return toDto(created), nil
}

// Update overwrites an existing purchase and returns the updated row.
// Returns ErrPurchaseNotFound if no purchase exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, purchase PurchaseInputDto) (*PurchaseDto, error) {
	updated, err := s.purchaseStore.Update(ctx, id, purchase.params())
	if err != nil {
		return nil, err
	}
	return toDto(updated), nil
}

// Delete removes one purchase. The affected-row count of the delete statement
// substitutes for an existence check.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.purchaseStore.Delete(ctx, id)
}

// DeleteForCustomer removes all purchases of the customer with the given
// external number. The per-customer deletes run sequentially, and when none
// of them affected a row, a re-query disambiguates "customer has no
// purchases" (an error) from "rows vanished between check and delete"
// (treated as success). The steps are intentionally not one transaction.
func (s *Service) DeleteForCustomer(ctx context.Context, number string) error {
	customers, err := s.purchaseStore.FindCustomersByNumber(ctx, number)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		return fmt.Errorf("no customer with number %s: %w", number, apperrors.ErrUnknownCustomer)
	}

	anyDeleted := false
	for _, customer := range customers {
		affected, err := s.purchaseStore.DeleteByCustomerID(ctx, customer.ID)
		if err != nil {
			return err
		}
		if affected > 0 {
			anyDeleted = true
		}
	}

	if !anyDeleted {
		remaining, err := s.purchaseStore.FindByCustomerNumber(ctx, number)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return apperrors.ErrNoPurchasesForCustomer
		}
	}

	event := events.CustomerPurchasesDeletedEvent{CustomerNumber: number}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish CustomerPurchasesDeletedEvent", "error", err)
	}

	return nil
}

// toDto converts a store.Purchase to a PurchaseDto.
func toDto(purchase *store.Purchase) *PurchaseDto {
	if purchase == nil {
		return nil
	}
	return &PurchaseDto{
		ID:         purchase.ID,
		CustomerID: purchase.CustomerID,
		Item:       purchase.Item,
		Total:      purchase.Total,
		DataHora:   purchase.DataHora,
	}
}

func toDtos(purchases []store.Purchase) []PurchaseDto {
	dtos := make([]PurchaseDto, len(purchases))
	for i := range purchases {
		dtos[i] = *toDto(&purchases[i])
	}
	return dtos
}
