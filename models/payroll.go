package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus is the lifecycle state of a payroll slip.
type PayrollStatus string

const (
	PayrollDraft     PayrollStatus = "DRAFT"
	PayrollPaid      PayrollStatus = "PAID"
	PayrollCancelled PayrollStatus = "CANCELLED"
)

func (s PayrollStatus) Valid() bool {
	switch s {
	case PayrollDraft, PayrollPaid, PayrollCancelled:
		return true
	}
	return false
}

type PayrollSlip struct {
	ID            int64           `json:"id"`
	EmployeeID    int64           `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Period        string          `json:"period"` // YYYY-MM
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Allowance     decimal.Decimal `json:"allowance"`
	Bonus         decimal.Decimal `json:"bonus"`
	Deduction     decimal.Decimal `json:"deduction"`
	Total         decimal.Decimal `json:"total"`
	AllowanceNote string          `json:"allowance_note"`
	DeductionNote string          `json:"deduction_note"`
	Status        PayrollStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

type PayrollInput struct {
	EmployeeID    int64           `json:"employee_id" binding:"required"`
	Month         int             `json:"month" binding:"required"`
	Year          int             `json:"year" binding:"required"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Allowance     decimal.Decimal `json:"allowance"`
	Bonus         decimal.Decimal `json:"bonus"`
	Deduction     decimal.Decimal `json:"deduction"`
	AllowanceNote string          `json:"allowance_note"`
	DeductionNote string          `json:"deduction_note"`
}

// PayrollUpdate edits amounts and status; employee and period are fixed.
type PayrollUpdate struct {
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Allowance     decimal.Decimal `json:"allowance"`
	Bonus         decimal.Decimal `json:"bonus"`
	Deduction     decimal.Decimal `json:"deduction"`
	AllowanceNote string          `json:"allowance_note"`
	DeductionNote string          `json:"deduction_note"`
	Status        PayrollStatus   `json:"status"`
}

type PayrollSummary struct {
	Slips          []PayrollSlip   `json:"slips"`
	TotalPaidOut   decimal.Decimal `json:"total_paid_out"`
	TotalBase      decimal.Decimal `json:"total_base"`
	TotalAllowance decimal.Decimal `json:"total_allowance"`
	TotalBonus     decimal.Decimal `json:"total_bonus"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	Average        decimal.Decimal `json:"average"`
	LatestPeriod   string          `json:"latest_period,omitempty"`
}

// PayrollFilter narrows a slip listing. Zero values match everything.
type PayrollFilter struct {
	EmployeeID int64
	Period     string
	Year       int
	Status     PayrollStatus
}
