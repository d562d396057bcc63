package service

import (
	"context"
	"errors"
	"testing"

	apperrors "lojabackend/internal/errors"
	"lojabackend/internal/store"
	"lojabackend/pkg/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPurchaseStore is a mock implementation of the PurchaseStore interface
type mockPurchaseStore struct {
	purchases []store.Purchase
	purchase  *store.Purchase
	customer  *store.Customer
	customers []store.Customer
	remaining []store.Purchase

	affectedByCustomer map[int64]int64
	deleteCalls        []int64

	err          error
	customerErr  error
	findByNumErr error
}

func (m *mockPurchaseStore) FindAll(_ context.Context) ([]store.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.purchases, nil
}

func (m *mockPurchaseStore) FindByID(_ context.Context, _ int64) (*store.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.purchase, nil
}

func (m *mockPurchaseStore) FindCustomerByID(_ context.Context, _ int64) (*store.Customer, error) {
	if m.customerErr != nil {
		return nil, m.customerErr
	}
	return m.customer, nil
}

func (m *mockPurchaseStore) FindByCustomerID(_ context.Context, _ int64) ([]store.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.purchases, nil
}

func (m *mockPurchaseStore) FindCustomersByNumber(_ context.Context, _ string) ([]store.Customer, error) {
	if m.customerErr != nil {
		return nil, m.customerErr
	}
	return m.customers, nil
}

func (m *mockPurchaseStore) FindByCustomerNumber(_ context.Context, _ string) ([]store.Purchase, error) {
	if m.findByNumErr != nil {
		return nil, m.findByNumErr
	}
	return m.remaining, nil
}

func (m *mockPurchaseStore) Create(_ context.Context, params *store.PurchaseParams) (*store.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := &store.Purchase{
		ID:         m.purchase.ID,
		CustomerID: params.CustomerID,
		Item:       params.Item,
		Total:      params.Total,
		DataHora:   params.DataHora,
	}
	return created, nil
}

func (m *mockPurchaseStore) Update(_ context.Context, id int64, params *store.PurchaseParams) (*store.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	updated := &store.Purchase{
		ID:         id,
		CustomerID: params.CustomerID,
		Item:       params.Item,
		Total:      params.Total,
		DataHora:   params.DataHora,
	}
	return updated, nil
}

func (m *mockPurchaseStore) Delete(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockPurchaseStore) DeleteByCustomerID(_ context.Context, customerID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.deleteCalls = append(m.deleteCalls, customerID)
	return m.affectedByCustomer[customerID], nil
}

// mockPublisher records published events instead of talking to NATS.
type mockPublisher struct {
	events []messaging.Event
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func ptrInt64(v int64) *int64 { return &v }
func ptrStr(v string) *string { return &v }

func input() PurchaseInputDto {
	return PurchaseInputDto{
		CustomerID: ptrInt64(7),
		Item:       ptrStr("Arroz 5kg"),
		Total:      ptrStr("25.90"),
		DataHora:   ptrStr("2024-05-12 14:33:00"),
	}
}

func Test_PurchaseService_ListAll(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockPurchaseStore
		expected    []PurchaseDto
		expectError bool
	}{
		{
			name: "Success - purchases found",
			mockStore: &mockPurchaseStore{
				purchases: []store.Purchase{
					{ID: 1, CustomerID: 7, Item: "Arroz 5kg", Total: "25.90", DataHora: "2024-05-12 14:33:00"},
					{ID: 2, CustomerID: 8, Item: "Feijão 1kg", Total: "8.50", DataHora: "2024-05-13 09:10:00"},
				},
			},
			expected: []PurchaseDto{
				{ID: 1, CustomerID: 7, Item: "Arroz 5kg", Total: "25.90", DataHora: "2024-05-12 14:33:00"},
				{ID: 2, CustomerID: 8, Item: "Feijão 1kg", Total: "8.50", DataHora: "2024-05-13 09:10:00"},
			},
		},
		{
			name:      "Success - no purchases",
			mockStore: &mockPurchaseStore{purchases: []store.Purchase{}},
			expected:  []PurchaseDto{},
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockPurchaseStore{err: errors.New("connection refused")},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &mockPublisher{})
			// when
			found, err := service.ListAll(context.Background())
			// then
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_PurchaseService_ListForCustomer(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockPurchaseStore
		customerID  int64
		expected    []PurchaseDto
		expectError error
	}{
		{
			name: "Success - customer with purchases",
			mockStore: &mockPurchaseStore{
				customer:  &store.Customer{ID: 7, Number: "1234"},
				purchases: []store.Purchase{{ID: 1, CustomerID: 7, Item: "Arroz 5kg", Total: "25.90", DataHora: "2024-05-12 14:33:00"}},
			},
			customerID: 7,
			expected:   []PurchaseDto{{ID: 1, CustomerID: 7, Item: "Arroz 5kg", Total: "25.90", DataHora: "2024-05-12 14:33:00"}},
		},
		{
			name: "Success - customer without purchases",
			mockStore: &mockPurchaseStore{
				customer:  &store.Customer{ID: 7, Number: "1234"},
				purchases: []store.Purchase{},
			},
			customerID: 7,
			expected:   []PurchaseDto{},
		},
		{
			name:        "Error - customer not found",
			mockStore:   &mockPurchaseStore{customerErr: apperrors.ErrCustomerNotFound},
			customerID:  99,
			expectError: apperrors.ErrCustomerNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &mockPublisher{})
			// when
			found, err := service.ListForCustomer(context.Background(), tc.customerID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_PurchaseService_Create(t *testing.T) {
	testCases := []struct {
		name          string
		mockStore     *mockPurchaseStore
		mockPublisher *mockPublisher
		expectError   bool
		expectEvents  int
	}{
		{
			name:          "Success - purchase created and event published",
			mockStore:     &mockPurchaseStore{purchase: &store.Purchase{ID: 42}},
			mockPublisher: &mockPublisher{},
			expectEvents:  1,
		},
		{
			name:          "Success - publisher failure is tolerated",
			mockStore:     &mockPurchaseStore{purchase: &store.Purchase{ID: 42}},
			mockPublisher: &mockPublisher{err: errors.New("nats: no responders")},
			expectEvents:  0,
		},
		{
			name:          "Error - store failure",
			mockStore:     &mockPurchaseStore{err: errors.New("connection refused")},
			mockPublisher: &mockPublisher{},
			expectError:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, tc.mockPublisher)
			// when
			created, err := service.Create(context.Background(), input())
			// then
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, int64(42), created.ID)
			assert.Equal(t, int64(7), created.CustomerID)
			assert.Equal(t, "Arroz 5kg", created.Item)
			assert.Len(t, tc.mockPublisher.events, tc.expectEvents)
		})
	}
}

func Test_PurchaseService_Update(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockPurchaseStore
		expectError error
	}{
		{
			name:      "Success - purchase updated",
			mockStore: &mockPurchaseStore{},
		},
		{
			name:        "Error - purchase not found",
			mockStore:   &mockPurchaseStore{err: apperrors.ErrPurchaseNotFound},
			expectError: apperrors.ErrPurchaseNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &mockPublisher{})
			// when
			updated, err := service.Update(context.Background(), 42, input())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Equal(t, int64(42), updated.ID)
			assert.Equal(t, "25.90", updated.Total)
		})
	}
}

func Test_PurchaseService_Delete(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockPurchaseStore
		expectError error
	}{
		{
			name:      "Success - purchase deleted",
			mockStore: &mockPurchaseStore{},
		},
		{
			name:        "Error - purchase not found",
			mockStore:   &mockPurchaseStore{err: apperrors.ErrPurchaseNotFound},
			expectError: apperrors.ErrPurchaseNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &mockPublisher{})
			// when
			err := service.Delete(context.Background(), 42)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func Test_PurchaseService_DeleteForCustomer(t *testing.T) {
	testCases := []struct {
		name         string
		mockStore    *mockPurchaseStore
		expectError  error
		expectCalls  []int64
		expectEvents int
	}{
		{
			name: "Success - purchases deleted",
			mockStore: &mockPurchaseStore{
				customers:          []store.Customer{{ID: 7, Number: "1234"}},
				affectedByCustomer: map[int64]int64{7: 3},
			},
			expectCalls:  []int64{7},
			expectEvents: 1,
		},
		{
			name: "Success - every duplicate customer is visited",
			mockStore: &mockPurchaseStore{
				customers:          []store.Customer{{ID: 7, Number: "1234"}, {ID: 9, Number: "1234"}},
				affectedByCustomer: map[int64]int64{7: 0, 9: 2},
			},
			expectCalls:  []int64{7, 9},
			expectEvents: 1,
		},
		{
			name:        "Error - unknown customer",
			mockStore:   &mockPurchaseStore{customers: []store.Customer{}},
			expectError: apperrors.ErrUnknownCustomer,
		},
		{
			name: "Error - customer has no purchases",
			mockStore: &mockPurchaseStore{
				customers:          []store.Customer{{ID: 7, Number: "1234"}},
				affectedByCustomer: map[int64]int64{7: 0},
				remaining:          []store.Purchase{},
			},
			expectError: apperrors.ErrNoPurchasesForCustomer,
			expectCalls: []int64{7},
		},
		{
			name: "Success - rows vanished between check and delete",
			mockStore: &mockPurchaseStore{
				customers:          []store.Customer{{ID: 7, Number: "1234"}},
				affectedByCustomer: map[int64]int64{7: 0},
				remaining:          []store.Purchase{{ID: 1, CustomerID: 7}},
			},
			expectCalls:  []int64{7},
			expectEvents: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &mockPublisher{}
			service := NewService(tc.mockStore, publisher)
			// when
			err := service.DeleteForCustomer(context.Background(), "1234")
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectCalls, tc.mockStore.deleteCalls)
			assert.Len(t, publisher.events, tc.expectEvents)
		})
	}
}
