package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState means the operation is not legal for the
	// entity's current status.
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientStock means a confirmation would drive a
	// product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError names the offending product so callers can
// tell which line blocked the confirmation.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, required %d",
		e.Name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
