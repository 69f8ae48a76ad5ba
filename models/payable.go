package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types that move the kasbon balance.
const (
	TypeKasbon      = "KASBON"
	TypeBayarKasbon = "BAYAR KASBON"
)

// PayableState is the single running kasbon balance.
type PayableState struct {
	TotalOwed decimal.Decimal `json:"total_owed"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PayableReconciliation compares the stored balance against the balance
// derived from the transaction history.
type PayableReconciliation struct {
	Stored   decimal.Decimal `json:"stored"`
	Derived  decimal.Decimal `json:"derived"`
	Drift    decimal.Decimal `json:"drift"`
	Grants   int             `json:"grants"`
	Repays   int             `json:"repayments"`
	Rejected int             `json:"rejected_repayments"`
	Applied  bool            `json:"applied"`
}
