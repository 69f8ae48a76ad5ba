package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one cash movement. Type is the free-text category key
// resolved by the category catalog.
type Transaction struct {
	ID        int64           `json:"id"`
	Date      time.Time       `json:"date"`
	ItemName  string          `json:"item_name"`
	Type      string          `json:"type"`
	Quantity  string          `json:"quantity"`
	Unit      string          `json:"unit"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	ExtraNote string          `json:"extra_note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionInput carries the fields accepted by add and edit.
// Date, ItemName, Type and Amount are required.
type TransactionInput struct {
	Date      string          `json:"date" binding:"required"`
	ItemName  string          `json:"item_name" binding:"required"`
	Type      string          `json:"type" binding:"required"`
	Quantity  string          `json:"quantity"`
	Unit      string          `json:"unit"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	ExtraNote string          `json:"extra_note"`
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter";
// From is inclusive and To exclusive.
type TransactionFilter struct {
	Month int
	Year  int
	From  time.Time
	To    time.Time
	Types []string
}

// TransactionList is the cashflow page payload.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Summary      PeriodSummary `json:"summary"`
	Payable      PayableState  `json:"payable"`
	Years        []int         `json:"years"`
	Month        int           `json:"month,omitempty"`
	Year         int           `json:"year,omitempty"`
}
