package ledger

import "errors"

var (
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrInvalidClient     = errors.New("invalid client")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrInvalidPayment    = errors.New("invalid payment")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDuplicateNumber   = errors.New("document number already used")
	ErrQuoteNotPayable   = errors.New("payments cannot be recorded against a quote")
	ErrClientEntityMatch = errors.New("client does not belong to entity")
)
