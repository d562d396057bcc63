package store

import (
	"context"
	"errors"
	"fmt"

	apperrors "lojabackend/internal/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements PurchaseStore and ProductStore on top of a PostgreSQL
// connection pool. The pool is injected, never held as package state.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new store instance using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const purchaseColumns = "id, id_cliente, compra, total, datahora"

func scanPurchases(rows pgx.Rows) ([]Purchase, error) {
	defer rows.Close()
	purchases := make([]Purchase, 0)
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Item, &p.Total, &p.DataHora); err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read purchase rows: %w", err)
	}
	return purchases, nil
}

func (p *PgStore) FindAll(ctx context.Context) ([]Purchase, error) {
	rows, err := p.db.Query(ctx, "SELECT "+purchaseColumns+" FROM compras")
	if err != nil {
		return nil, fmt.Errorf("failed to find purchases: %w", err)
	}
	return scanPurchases(rows)
}

func (p *PgStore) FindByID(ctx context.Context, id int64) (*Purchase, error) {
	var purchase Purchase
	err := p.db.QueryRow(ctx, "SELECT "+purchaseColumns+" FROM compras WHERE id = $1", id).
		Scan(&purchase.ID, &purchase.CustomerID, &purchase.Item, &purchase.Total, &purchase.DataHora)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID: %w", err)
	}
	return &purchase, nil
}

func (p *PgStore) FindCustomerByID(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	err := p.db.QueryRow(ctx, "SELECT id, numero FROM clientes WHERE id = $1", id).
		Scan(&customer.ID, &customer.Number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return &customer, nil
}

func (p *PgStore) FindByCustomerID(ctx context.Context, customerID int64) ([]Purchase, error) {
	rows, err := p.db.Query(ctx, "SELECT "+purchaseColumns+" FROM compras WHERE id_cliente = $1", customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchases by customer ID: %w", err)
	}
	return scanPurchases(rows)
}

func (p *PgStore) FindCustomersByNumber(ctx context.Context, number string) ([]Customer, error) {
	rows, err := p.db.Query(ctx, "SELECT id, numero FROM clientes WHERE numero = $1", number)
	if err != nil {
		return nil, fmt.Errorf("failed to find customers by number: %w", err)
	}
	defer rows.Close()
	customers := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Number); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customer rows: %w", err)
	}
	return customers, nil
}

func (p *PgStore) FindByCustomerNumber(ctx context.Context, number string) ([]Purchase, error) {
	rows, err := p.db.Query(ctx,
		"SELECT "+purchaseColumns+" FROM compras WHERE id_cliente IN (SELECT id FROM clientes WHERE numero = $1)", number)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchases by customer number: %w", err)
	}
	return scanPurchases(rows)
}

func (p *PgStore) Create(ctx context.Context, params *PurchaseParams) (*Purchase, error) {
	var purchase Purchase
	err := p.db.QueryRow(ctx,
		"INSERT INTO compras (id_cliente, compra, total, datahora) VALUES ($1, $2, $3, $4) RETURNING "+purchaseColumns,
		params.CustomerID, params.Item, params.Total, params.DataHora).
		Scan(&purchase.ID, &purchase.CustomerID, &purchase.Item, &purchase.Total, &purchase.DataHora)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return &purchase, nil
}

// Update performs the existence check and the full-row overwrite inside one
// transaction, so the checked row cannot vanish between the two statements.
func (p *PgStore) Update(ctx context.Context, id int64, params *PurchaseParams) (*Purchase, error) {
	var purchase Purchase

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		var existing int64
		err := tx.QueryRow(ctx, "SELECT id FROM compras WHERE id = $1 FOR UPDATE", id).Scan(&existing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPurchaseNotFound
			}
			return fmt.Errorf("failed to check purchase existence: %w", err)
		}

		err = tx.QueryRow(ctx,
			"UPDATE compras SET id_cliente = $1, compra = $2, total = $3, datahora = $4 WHERE id = $5 RETURNING "+purchaseColumns,
			params.CustomerID, params.Item, params.Total, params.DataHora, id).
			Scan(&purchase.ID, &purchase.CustomerID, &purchase.Item, &purchase.Total, &purchase.DataHora)
		if err != nil {
			return fmt.Errorf("failed to update purchase: %w", err)
		}
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}

	return &purchase, nil
}

func (p *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, "DELETE FROM compras WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPurchaseNotFound
	}
	return nil
}

func (p *PgStore) DeleteByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	tag, err := p.db.Exec(ctx, "DELETE FROM compras WHERE id_cliente = $1", customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete purchases of customer: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return apperrors.ErrTransactionBegin
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return apperrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.ErrTransactionCommit
	}

	return nil
}
