package services

import (
	"context"
	"fmt"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/shopspring/decimal"
)

// TypeOwnerDrawing is cash taken out by the owner. It reduces equity
// directly instead of counting as an expense on the balance sheet.
const TypeOwnerDrawing = "PENGELUARAN TUNAI UNTUK PEMILIK"

const (
	trendMonths          = 6
	recentCount          = 5
	statementMonthLayout = "January 2006"
)

// ReportService derives the dashboard and financial statements. It only
// reads.
type ReportService struct {
	store   store.Store
	catalog *Catalog
	clock   Clock
	company string
}

func NewReportService(st store.Store, catalog *Catalog, clock Clock, company string) *ReportService {
	if clock == nil {
		clock = SystemClock
	}
	return &ReportService{store: st, catalog: catalog, clock: clock, company: company}
}

// ============================================================================
// DASHBOARD
// ============================================================================

func (s *ReportService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	now := s.clock()
	txs, err := s.store.ListTransactions(ctx, models.TransactionFilter{})
	if err != nil {
		return models.Dashboard{}, err
	}
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	employees, err := s.store.CountEmployees(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	invoices, err := s.store.CountInvoices(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	payable, err := s.store.GetPayable(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	from, to := MonthRange(now.Year(), int(now.Month()))
	month := Aggregate(s.catalog, txs, models.TransactionFilter{From: from, To: to})
	allTime := Aggregate(s.catalog, txs, models.TransactionFilter{})
	fixed, _, skipped := s.bookValues(assets, calendarDay(now))

	return models.Dashboard{
		GeneratedAt:        now,
		Month:              month,
		AllTime:            allTime,
		CashOnHand:         allTime.Balance,
		FixedAssetsValue:   fixed,
		SkippedAssets:      skipped,
		EmployeeCount:      employees,
		InvoiceCount:       invoices,
		PayableBalance:     payable.TotalOwed,
		Chart:              Chart(month),
		Trend:              Trend(s.catalog, txs, now, trendMonths),
		RecentTransactions: Recent(txs, recentCount),
	}, nil
}

// bookValues sums book values of assets acquired on or before asOf.
// Incomplete assets are skipped and counted.
func (s *ReportService) bookValues(assets []models.Asset, asOf time.Time) (total decimal.Decimal, counted, skipped int) {
	total = decimal.Zero
	for _, a := range assets {
		if a.AcquiredOn.After(asOf) {
			continue
		}
		bv, err := BookValue(a, asOf)
		if err != nil {
			utils.SafeDebug("asset %d left out of book value: %v", a.ID, err)
			skipped++
			continue
		}
		total = total.Add(bv)
		counted++
	}
	return total, counted, skipped
}

// ============================================================================
// INCOME STATEMENT
// ============================================================================

// statementRange resolves optional month/year into [from, to). No filter
// means the current month; a year alone means the whole year; a month
// alone uses the current year.
func (s *ReportService) statementRange(month, year int) (time.Time, time.Time) {
	now := s.clock()
	year = currentYear(month, year, now)
	switch {
	case month == 0 && year == 0:
		return MonthRange(now.Year(), int(now.Month()))
	case month == 0:
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0)
	}
	return MonthRange(year, month)
}

func incomeSection(sum models.PeriodSummary, from, to time.Time) models.IncomeSection {
	sec := models.IncomeSection{
		From:           from,
		To:             to,
		Revenue:        sum.Pemasukan,
		COGS:           sum.HPP,
		OperatingCosts: sum.Operasional,
		OtherCosts:     sum.LainLain.Add(sum.Pengeluaran),
		GrossMargin:    decimal.Zero,
		NetMargin:      decimal.Zero,
	}
	sec.GrossProfit = sec.Revenue.Sub(sec.COGS)
	sec.NetIncome = sec.GrossProfit.Sub(sec.OperatingCosts).Sub(sec.OtherCosts)
	if !sec.Revenue.IsZero() {
		hundred := decimal.NewFromInt(100)
		sec.GrossMargin = sec.GrossProfit.Div(sec.Revenue).Mul(hundred).Round(2)
		sec.NetMargin = sec.NetIncome.Div(sec.Revenue).Mul(hundred).Round(2)
	}
	return sec
}

func (s *ReportService) IncomeStatement(ctx context.Context, month, year int) (models.IncomeStatementView, error) {
	if err := checkPeriod(month, year); err != nil {
		return models.IncomeStatementView{}, err
	}
	from, to := s.statementRange(month, year)
	txs, err := s.store.ListTransactions(ctx, models.TransactionFilter{To: to})
	if err != nil {
		return models.IncomeStatementView{}, err
	}

	period := models.TransactionFilter{From: from, To: to}
	view := models.IncomeStatementView{
		Title:           s.statementTitle("Laporan Laba Rugi", from, to),
		Month:           month,
		Year:            year,
		Period:          incomeSection(Aggregate(s.catalog, txs, period), from, to),
		Cumulative:      incomeSection(Aggregate(s.catalog, txs, models.TransactionFilter{To: to}), time.Time{}, to),
		RevenueByType:   ByType(s.catalog, txs, period, models.BucketPemasukan),
		COGSByType:      ByType(s.catalog, txs, period, models.BucketHPP),
		OperatingByType: ByType(s.catalog, txs, period, models.BucketOperasional),
		OtherByType:     ByType(s.catalog, txs, period, models.BucketLainLain, models.BucketPengeluaran),
		GeneratedAt:     s.clock(),
	}
	return view, nil
}

func (s *ReportService) statementTitle(kind string, from, to time.Time) string {
	label := from.Format(statementMonthLayout)
	if to.Sub(from) > 32*24*time.Hour {
		label = from.Format("2006")
	}
	if s.company == "" {
		return fmt.Sprintf("%s %s", kind, label)
	}
	return fmt.Sprintf("%s %s - %s", kind, s.company, label)
}

// ============================================================================
// BALANCE SHEET
// ============================================================================

// BalanceSheet reports the position at the end of the selected month, or
// now when no month is given.
//
// Assets are cash, outstanding kasbon (a receivable from staff) and fixed
// asset book value. Liabilities are funding received and the kasbon
// balance. Equity is capital, fixed assets at book value as contributed
// capital, less owner drawings, plus net income excluding drawings.
// Assets equal liabilities plus equity for any ledger.
//
// Receivables is therefore non-zero whenever kasbon is outstanding. The
// same amount appears under Liabilities.Payable, and fixed assets appear
// again as Equity.ContributedAssets, so each pair offsets.
func (s *ReportService) BalanceSheet(ctx context.Context, month, year int) (models.BalanceSheetView, error) {
	if err := checkPeriod(month, year); err != nil {
		return models.BalanceSheetView{}, err
	}
	now := s.clock()
	historical := month != 0 || year != 0
	var asOf, bound time.Time
	if historical {
		_, bound = s.statementRange(month, year)
		asOf = bound.Add(-time.Nanosecond)
	} else {
		asOf = now
		bound = calendarDay(now).AddDate(0, 0, 1)
	}

	txs, err := s.store.ListTransactions(ctx, models.TransactionFilter{To: bound})
	if err != nil {
		return models.BalanceSheetView{}, err
	}
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return models.BalanceSheetView{}, err
	}

	var payable decimal.Decimal
	if historical {
		payable = Replay(txs).Balance
	} else {
		p, err := s.store.GetPayable(ctx)
		if err != nil {
			return models.BalanceSheetView{}, err
		}
		payable = p.TotalOwed
	}

	sum := Aggregate(s.catalog, txs, models.TransactionFilter{})
	drawings := decimal.Zero
	for _, t := range txs {
		if t.Type == TypeOwnerDrawing {
			drawings = drawings.Add(t.Amount)
		}
	}
	bookValue, assetCount, _ := s.bookValues(assets, calendarDay(asOf))

	return AssembleBalanceSheet(asOf, sum, drawings, bookValue, assetCount, payable), nil
}

// AssembleBalanceSheet builds the statement from ledger totals.
func AssembleBalanceSheet(asOf time.Time, sum models.PeriodSummary, drawings, bookValue decimal.Decimal, assetCount int, payable decimal.Decimal) models.BalanceSheetView {
	expensesExDrawings := sum.TotalExpense.Sub(drawings)
	netIncome := sum.Pemasukan.Sub(expensesExDrawings)

	assets := models.BalanceSheetAssets{
		Cash:        sum.Balance,
		Receivables: payable,
		FixedAssets: bookValue,
		AssetCount:  assetCount,
	}
	assets.Total = assets.Cash.Add(assets.Receivables).Add(assets.FixedAssets)

	liabilities := models.BalanceSheetLiabilities{
		Funding: sum.Funding,
		Payable: payable,
	}
	liabilities.Total = liabilities.Funding.Add(liabilities.Payable)

	equity := models.BalanceSheetEquity{
		Modal:             sum.Modal,
		ContributedAssets: bookValue,
		NetIncome:         netIncome,
		Drawings:          drawings,
	}
	equity.Total = equity.Modal.Add(equity.ContributedAssets).Add(equity.NetIncome).Sub(equity.Drawings)

	total := liabilities.Total.Add(equity.Total)
	return models.BalanceSheetView{
		AsOf:                 asOf,
		Assets:               assets,
		Liabilities:          liabilities,
		Equity:               equity,
		LiabilitiesAndEquity: total,
		Balanced:             assets.Total.Equal(total),
	}
}
