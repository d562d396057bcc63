package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const productColumns = "id, nome, categoria, preco"

func scanProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

func (p *PgStore) FindAllProducts(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx, "SELECT "+productColumns+" FROM produtos")
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return scanProducts(rows)
}

func (p *PgStore) FindProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	rows, err := p.db.Query(ctx, "SELECT "+productColumns+" FROM produtos WHERE categoria = $1", category)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return scanProducts(rows)
}

func (p *PgStore) CreateProduct(ctx context.Context, params *ProductParams) (*Product, error) {
	var product Product
	err := p.db.QueryRow(ctx,
		"INSERT INTO produtos (nome, categoria, preco) VALUES ($1, $2, $3) RETURNING "+productColumns,
		params.Name, params.Category, params.Price).
		Scan(&product.ID, &product.Name, &product.Category, &product.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}
