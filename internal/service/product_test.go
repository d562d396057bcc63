package service

import (
	"context"
	"errors"
	"testing"

	"lojabackend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  *store.Product
	err      error
}

func (m *mockProductStore) FindAllProducts(_ context.Context) ([]store.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductStore) FindProductsByCategory(_ context.Context, category string) ([]store.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var filtered []store.Product
	for _, p := range m.products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m *mockProductStore) CreateProduct(_ context.Context, params *store.ProductParams) (*store.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &store.Product{
		ID:       m.product.ID,
		Name:     params.Name,
		Category: params.Category,
		Price:    params.Price,
	}, nil
}

func Test_ProductService_ListAll(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    []ProductDto
		expectError bool
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []store.Product{
					{ID: 1, Name: "Arroz 5kg", Category: "alimentos", Price: "25.90"},
					{ID: 2, Name: "Detergente", Category: "limpeza", Price: "2.99"},
				},
			},
			expected: []ProductDto{
				{ID: 1, Name: "Arroz 5kg", Category: "alimentos", Price: "25.90"},
				{ID: 2, Name: "Detergente", Category: "limpeza", Price: "2.99"},
			},
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockProductStore{err: errors.New("connection refused")},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewProductService(tc.mockStore)
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

func Test_ProductService_ListByCategory(t *testing.T) {
	catalog := []store.Product{
		{ID: 1, Name: "Arroz 5kg", Category: "alimentos", Price: "25.90"},
		{ID: 2, Name: "Detergente", Category: "limpeza", Price: "2.99"},
	}

	testCases := []struct {
		name     string
		category string
		expected []ProductDto
	}{
		{
			name:     "Success - matching category",
			category: "limpeza",
			expected: []ProductDto{{ID: 2, Name: "Detergente", Category: "limpeza", Price: "2.99"}},
		},
		{
			name:     "Success - unknown category yields empty list",
			category: "eletronicos",
			expected: []ProductDto{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewProductService(&mockProductStore{products: catalog})
			// when
			found, err := service.ListByCategory(context.Background(), tc.category)
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError bool
	}{
		{
			name:      "Success - product created",
			mockStore: &mockProductStore{product: &store.Product{ID: 5}},
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockProductStore{err: errors.New("connection refused")},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewProductService(tc.mockStore)
			in := ProductInputDto{Name: ptrStr("Arroz 5kg"), Category: ptrStr("alimentos"), Price: ptrStr("25.90")}
			// when
			created, err := service.Create(context.Background(), in)
			// then
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, int64(5), created.ID)
			assert.Equal(t, "Arroz 5kg", created.Name)
			assert.Equal(t, "alimentos", created.Category)
		})
	}
}
