package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID        int64           `json:"id"`
	Number    string          `json:"number"`
	Customer  string          `json:"customer"`
	Date      time.Time       `json:"date"`
	Address   string          `json:"address"`
	Note      string          `json:"note"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Lines     []InvoiceLine   `json:"lines"`
}

type InvoiceLine struct {
	ID        int64           `json:"id"`
	InvoiceID int64           `json:"invoice_id"`
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type InvoiceInput struct {
	Number   string             `json:"number" binding:"required"`
	Customer string             `json:"customer" binding:"required"`
	Date     string             `json:"date" binding:"required"`
	Address  string             `json:"address"`
	Note     string             `json:"note"`
	Lines    []InvoiceLineInput `json:"lines"`
}

type InvoiceLineInput struct {
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
