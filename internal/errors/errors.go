// Package errors provides custom error types for purchase and product operations.
package errors

import "errors"

var ErrPurchaseNotFound = errors.New("purchase not found")

// ErrCustomerNotFound is returned when the customer referenced by a purchase
// listing does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrUnknownCustomer is the distinct kind for the cascade delete: no customer
// matches the given external number.
var ErrUnknownCustomer = errors.New("customer does not exist")

// ErrNoPurchasesForCustomer is returned by the cascade delete when the
// customer exists but owns no purchases.
var ErrNoPurchasesForCustomer = errors.New("no purchases found for customer")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")
