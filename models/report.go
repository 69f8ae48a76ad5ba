package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is an accounting classification of a transaction type.
type Bucket string

const (
	BucketModal       Bucket = "MODAL"
	BucketPemasukan   Bucket = "PEMASUKAN"
	BucketFunding     Bucket = "FUNDING"
	BucketHPP         Bucket = "HPP"
	BucketOperasional Bucket = "OPERASIONAL"
	BucketLainLain    Bucket = "LAIN_LAIN"
	BucketPengeluaran Bucket = "PENGELUARAN"
)

// Buckets lists every bucket in presentation order.
var Buckets = []Bucket{
	BucketModal, BucketPemasukan, BucketFunding,
	BucketHPP, BucketOperasional, BucketLainLain, BucketPengeluaran,
}

// Income reports whether money classified into b is counted as income.
func (b Bucket) Income() bool {
	return b == BucketModal || b == BucketPemasukan || b == BucketFunding
}

// PeriodSummary holds per-bucket totals for a set of transactions.
type PeriodSummary struct {
	Modal        decimal.Decimal `json:"modal"`
	Pemasukan    decimal.Decimal `json:"pemasukan"`
	Funding      decimal.Decimal `json:"funding"`
	HPP          decimal.Decimal `json:"hpp"`
	Operasional  decimal.Decimal `json:"operasional"`
	LainLain     decimal.Decimal `json:"lain_lain"`
	Pengeluaran  decimal.Decimal `json:"pengeluaran"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
}

// Bucket returns the running total of one bucket.
func (s PeriodSummary) Bucket(b Bucket) decimal.Decimal {
	switch b {
	case BucketModal:
		return s.Modal
	case BucketPemasukan:
		return s.Pemasukan
	case BucketFunding:
		return s.Funding
	case BucketHPP:
		return s.HPP
	case BucketOperasional:
		return s.Operasional
	case BucketLainLain:
		return s.LainLain
	}
	return s.Pengeluaran
}

type TrendPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type ChartSeries struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

type Dashboard struct {
	GeneratedAt        time.Time       `json:"generated_at"`
	Month              PeriodSummary   `json:"month"`
	AllTime            PeriodSummary   `json:"all_time"`
	CashOnHand         decimal.Decimal `json:"cash_on_hand"`
	FixedAssetsValue   decimal.Decimal `json:"fixed_assets_value"`
	SkippedAssets      int             `json:"skipped_assets"`
	EmployeeCount      int             `json:"employee_count"`
	InvoiceCount       int             `json:"invoice_count"`
	PayableBalance     decimal.Decimal `json:"payable_balance"`
	Chart              ChartSeries     `json:"chart"`
	Trend              []TrendPoint    `json:"trend"`
	RecentTransactions []Transaction   `json:"recent_transactions"`
}

type TypeAmount struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeSection is one column of the income statement.
type IncomeSection struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Revenue        decimal.Decimal `json:"revenue"`
	COGS           decimal.Decimal `json:"cogs"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	OperatingCosts decimal.Decimal `json:"operating_costs"`
	OtherCosts     decimal.Decimal `json:"other_costs"`
	NetIncome      decimal.Decimal `json:"net_income"`
	GrossMargin    decimal.Decimal `json:"gross_margin"`
	NetMargin      decimal.Decimal `json:"net_margin"`
}

type IncomeStatementView struct {
	Title           string        `json:"title"`
	Month           int           `json:"month,omitempty"`
	Year            int           `json:"year,omitempty"`
	Period          IncomeSection `json:"period"`
	Cumulative      IncomeSection `json:"cumulative"`
	RevenueByType   []TypeAmount  `json:"revenue_by_type"`
	COGSByType      []TypeAmount  `json:"cogs_by_type"`
	OperatingByType []TypeAmount  `json:"operating_by_type"`
	OtherByType     []TypeAmount  `json:"other_by_type"`
	GeneratedAt     time.Time     `json:"generated_at"`
}

type BalanceSheetAssets struct {
	Cash        decimal.Decimal `json:"cash"`
	Receivables decimal.Decimal `json:"receivables"`
	FixedAssets decimal.Decimal `json:"fixed_assets"`
	AssetCount  int             `json:"asset_count"`
	Total       decimal.Decimal `json:"total"`
}

type BalanceSheetLiabilities struct {
	Funding decimal.Decimal `json:"funding"`
	Payable decimal.Decimal `json:"payable"`
	Total   decimal.Decimal `json:"total"`
}

type BalanceSheetEquity struct {
	Modal             decimal.Decimal `json:"modal"`
	ContributedAssets decimal.Decimal `json:"contributed_assets"`
	NetIncome         decimal.Decimal `json:"net_income"`
	Drawings          decimal.Decimal `json:"drawings"`
	Total             decimal.Decimal `json:"total"`
}

type BalanceSheetView struct {
	AsOf                 time.Time               `json:"as_of"`
	Assets               BalanceSheetAssets      `json:"assets"`
	Liabilities          BalanceSheetLiabilities `json:"liabilities"`
	Equity               BalanceSheetEquity      `json:"equity"`
	LiabilitiesAndEquity decimal.Decimal         `json:"liabilities_and_equity"`
	Balanced             bool                    `json:"balanced"`
}
