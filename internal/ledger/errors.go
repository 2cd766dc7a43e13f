package ledger

import "errors"

var (
	// ErrCorruptStore means the durable medium held data that could not be
	// decoded. A never-initialized store is not corrupt; it reads as empty.
	ErrCorruptStore = errors.New("ledger storage is corrupt")

	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidCustomer   = errors.New("customer id is required")
	ErrInvalidListing    = errors.New("phone number and item name are required")
	ErrBadProductKey     = errors.New("malformed product key")
	ErrProductNotFound   = errors.New("no such product listing")
	ErrInsufficientStock = errors.New("insufficient stock")
)
