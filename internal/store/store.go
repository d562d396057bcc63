// Package store provides an interface for purchase and product storage operations.
package store

import (
	"context"
)

// Purchase is a row of the compras table. Total and DataHora stay text: the
// legacy schema stores them unparsed and the service never interprets them.
type Purchase struct {
	ID         int64
	CustomerID int64
	Item       string
	Total      string
	DataHora   string
}

// Customer is a row of the clientes table. The service only ever reads it.
type Customer struct {
	ID     int64
	Number string
}

// Product is a row of the produtos table.
type Product struct {
	ID       int64
	Name     string
	Category string
	Price    string
}

// PurchaseParams carries the writable columns of a purchase for inserts and
// full-row updates.
type PurchaseParams struct {
	CustomerID int64
	Item       string
	Total      string
	DataHora   string
}

// ProductParams carries the writable columns of a product.
type ProductParams struct {
	Name     string
	Category string
	Price    string
}

// PurchaseStore is an interface for purchase storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type PurchaseStore interface {
	// FindAll returns every purchase in storage order.
	FindAll(ctx context.Context) ([]Purchase, error)

	// FindByID retrieves a single purchase by its unique identifier.
	// Returns ErrPurchaseNotFound if no purchase exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Purchase, error)

	// FindCustomerByID retrieves a single customer by id.
	// Returns ErrCustomerNotFound if no customer exists with the given ID.
	FindCustomerByID(ctx context.Context, id int64) (*Customer, error)

	// FindByCustomerID returns all purchases belonging to the given customer.
	// Returns an empty slice if the customer has no purchases.
	FindByCustomerID(ctx context.Context, customerID int64) ([]Purchase, error)

	// FindCustomersByNumber returns every customer matching the external
	// number. Normally zero or one, but duplicates are tolerated.
	FindCustomersByNumber(ctx context.Context, number string) ([]Customer, error)

	// FindByCustomerNumber returns all purchases whose owner matches the
	// external number, resolved through the clientes table.
	FindByCustomerNumber(ctx context.Context, number string) ([]Purchase, error)

	// Create inserts a new purchase and returns the stored row.
	Create(ctx context.Context, params *PurchaseParams) (*Purchase, error)

	// Update overwrites every writable column of an existing purchase.
	// Returns ErrPurchaseNotFound if no purchase exists with the given ID.
	Update(ctx context.Context, id int64, params *PurchaseParams) (*Purchase, error)

	// Delete removes a purchase by id. The delete statement itself is the
	// existence check: zero affected rows yields ErrPurchaseNotFound.
	Delete(ctx context.Context, id int64) error

	// DeleteByCustomerID removes every purchase of one customer and reports
	// the number of rows affected.
	DeleteByCustomerID(ctx context.Context, customerID int64) (int64, error)
}

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// FindAllProducts returns every product.
	FindAllProducts(ctx context.Context) ([]Product, error)

	// FindProductsByCategory returns the products of one category.
	// Returns an empty slice if the category is empty or unknown.
	FindProductsByCategory(ctx context.Context, category string) ([]Product, error)

	// CreateProduct inserts a new product and returns the stored row.
	CreateProduct(ctx context.Context, params *ProductParams) (*Product, error)
}
