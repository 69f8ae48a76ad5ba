package services

import (
	"errors"
	"fmt"

	"github.com/daniarfurniture/finance-api/store"

	"github.com/shopspring/decimal"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// OverdrawError is returned when a kasbon repayment exceeds the balance
// owed, or when an edit or delete would leave the balance negative. Change
// is empty for a repayment and names the operation otherwise; Result is
// the balance that operation would have produced.
type OverdrawError struct {
	Amount  decimal.Decimal
	Balance decimal.Decimal
	Change  string
	Result  decimal.Decimal
}

func (e *OverdrawError) Error() string {
	if e.Change != "" {
		return fmt.Sprintf("%s would leave kasbon balance at %s (balance owed %s)",
			e.Change, e.Result.StringFixed(2), e.Balance.StringFixed(2))
	}
	return fmt.Sprintf("kasbon repayment %s exceeds balance owed %s",
		e.Amount.StringFixed(2), e.Balance.StringFixed(2))
}

// NotFoundError reports an operation on a missing identity.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness or ownership rule that blocks a write.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrNotComputable is returned by the depreciation calculator when an asset
// lacks cost or useful life. Results accompanying it are zero values.
var ErrNotComputable = errors.New("depreciation not computable: missing cost or useful life")

// notFound converts the store sentinel into a NotFoundError for entity.
func notFound(err error, entity string, id interface{}) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	if errors.Is(err, store.ErrDuplicate) {
		return &ConflictError{Message: fmt.Sprintf("%s already exists", entity)}
	}
	return err
}

// duplicate converts a uniqueness violation into a ConflictError.
func duplicate(err error, format string, args ...interface{}) error {
	if errors.Is(err, store.ErrDuplicate) {
		return &ConflictError{Message: fmt.Sprintf(format, args...)}
	}
	return err
}
