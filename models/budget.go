package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the RAB review state.
type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "DRAFT"
	BudgetReview   BudgetStatus = "REVIEW"
	BudgetApproved BudgetStatus = "APPROVED"
	BudgetRejected BudgetStatus = "REJECTED"
)

func (s BudgetStatus) Valid() bool {
	switch s {
	case BudgetDraft, BudgetReview, BudgetApproved, BudgetRejected:
		return true
	}
	return false
}

// Budget is a RAB (itemised project budget estimate).
type Budget struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	ProjectName string          `json:"project_name"`
	ClientName  string          `json:"client_name"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Status      BudgetStatus    `json:"status"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Lines       []BudgetLine    `json:"lines"`
}

type BudgetLine struct {
	ID        int64           `json:"id"`
	BudgetID  int64           `json:"budget_id"`
	Category  string          `json:"category"`
	Item      string          `json:"item"`
	Spec      string          `json:"spec"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type BudgetInput struct {
	ProjectName string            `json:"project_name" binding:"required"`
	ClientName  string            `json:"client_name" binding:"required"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Date        string            `json:"date" binding:"required"`
	Status      BudgetStatus      `json:"status"`
	Lines       []BudgetLineInput `json:"lines"`
}

type BudgetLineInput struct {
	Category  string          `json:"category"`
	Item      string          `json:"item"`
	Spec      string          `json:"spec"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type BudgetStatusRequest struct {
	Status BudgetStatus `json:"status" binding:"required"`
}
