package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// EMPLOYEE
// ============================================================================

type Employee struct {
	ID            int64           `json:"id"`
	NIK           *string         `json:"nik,omitempty"`
	Name          string          `json:"name"`
	Position      string          `json:"position"`
	Division      string          `json:"division,omitempty"`
	Status        string          `json:"status"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	BirthPlace    string          `json:"birth_place,omitempty"`
	BirthDate     *time.Time      `json:"birth_date,omitempty"`
	Address       string          `json:"address,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Bank          string          `json:"bank,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	NPWP          string          `json:"npwp,omitempty"`
	Education     string          `json:"education,omitempty"`
	MaritalStatus string          `json:"marital_status,omitempty"`
	JoinedOn      time.Time       `json:"joined_on"`
	Note          string          `json:"note,omitempty"`
	Photo         string          `json:"photo,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Employment statuses.
const (
	EmployeePermanent = "TETAP"
	EmployeeContract  = "KONTRAK"
	EmployeeProbation = "PERCOBAAN"
	EmployeeDaily     = "HARIAN"
)

type EmployeeInput struct {
	NIK           string          `json:"nik"`
	Name          string          `json:"name" binding:"required"`
	Position      string          `json:"position" binding:"required"`
	Division      string          `json:"division"`
	Status        string          `json:"status"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	BirthPlace    string          `json:"birth_place"`
	BirthDate     string          `json:"birth_date"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Bank          string          `json:"bank"`
	AccountNumber string          `json:"account_number"`
	NPWP          string          `json:"npwp"`
	Education     string          `json:"education"`
	MaritalStatus string          `json:"marital_status"`
	JoinedOn      string          `json:"joined_on" binding:"required"`
	Note          string          `json:"note"`
	Photo         string          `json:"photo"`
}

// ============================================================================
// EMPLOYEE REPORT
// ============================================================================

type CountByKey struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type EmployeeReport struct {
	Total           int             `json:"total"`
	ByStatus        []CountByKey    `json:"by_status"`
	ByPosition      []CountByKey    `json:"by_position"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	HighestPaid     *Employee       `json:"highest_paid,omitempty"`
	LowestPaid      *Employee       `json:"lowest_paid,omitempty"`
	LongestServing  *Employee       `json:"longest_serving,omitempty"`
	LongestTenure   string          `json:"longest_tenure"`
}
