package service

import (
	"context"
	"fmt"

	"lojabackend/internal/store"
)

// ProductService defines the methods for managing products.
type ProductService interface {
	// ListAll returns every product.
	ListAll(ctx context.Context) ([]ProductDto, error)

	// ListByCategory returns the products of one category, possibly empty.
	ListByCategory(ctx context.Context, category string) ([]ProductDto, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, product ProductInputDto) (*ProductDto, error)
}

// Products implements ProductService.
type Products struct {
	productStore store.ProductStore
}

// NewProductService creates a new instance of ProductService with the provided store.
func NewProductService(productStore store.ProductStore) *Products {
	return &Products{productStore: productStore}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Category string `json:"categoria"`
	Price    string `json:"preco"`
}

// ProductInputDto represents the data transfer object for creating a product.
type ProductInputDto struct {
	Name     *string `json:"nome"      validate:"required"`
	Category *string `json:"categoria" validate:"required"`
	Price    *string `json:"preco"     validate:"required"`
}

func (s *Products) ListAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.productStore.FindAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toProductDtos(products), nil
}

func (s *Products) ListByCategory(ctx context.Context, category string) ([]ProductDto, error) {
	products, err := s.productStore.FindProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products of category %s: %w", category, err)
	}
	return toProductDtos(products), nil
}

func (s *Products) Create(ctx context.Context, product ProductInputDto) (*ProductDto, error) {
	created, err := s.productStore.CreateProduct(ctx, &store.ProductParams{
		Name:     *product.Name,
		Category: *product.Category,
		Price:    *product.Price,
	})
	if err != nil {
		return nil, err
	}
	return toProductDto(created), nil
}

func toProductDto(product *store.Product) *ProductDto {
	if product == nil {
		return nil
	}
	return &ProductDto{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
	}
}

func toProductDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toProductDto(&products[i])
	}
	return dtos
}
