package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a fixed asset depreciated on a straight line.
type Asset struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	AcquiredOn   time.Time       `json:"acquired_on"`
	Cost         decimal.Decimal `json:"cost"`
	LifeYears    int             `json:"life_years"`
	Salvage      decimal.Decimal `json:"salvage"`
	CreatedAt    time.Time       `json:"created_at"`
}

type AssetInput struct {
	Name         string          `json:"name" binding:"required"`
	Manufacturer string          `json:"manufacturer"`
	AcquiredOn   string          `json:"acquired_on" binding:"required"`
	Cost         decimal.Decimal `json:"cost"`
	LifeYears    int             `json:"life_years"`
	Salvage      decimal.Decimal `json:"salvage"`
}

// ScheduleEntry is one year of a depreciation schedule.
type ScheduleEntry struct {
	Year         int             `json:"year"`
	Depreciation decimal.Decimal `json:"depreciation"`
	Accumulated  decimal.Decimal `json:"accumulated"`
	BookValue    decimal.Decimal `json:"book_value"`
}

// Depreciation is the computed view of one asset. Computable is false when
// the asset lacks cost or useful life; the amounts are then zero.
type Depreciation struct {
	Asset      Asset           `json:"asset"`
	Computable bool            `json:"computable"`
	Annual     decimal.Decimal `json:"annual"`
	BookValue  decimal.Decimal `json:"book_value"`
	AsOf       time.Time       `json:"as_of"`
	Schedule   []ScheduleEntry `json:"schedule"`
}
