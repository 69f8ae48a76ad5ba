package services

import (
	"context"
	"sort"
	"strings"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/shopspring/decimal"
)

type TransactionService struct {
	store           store.Store
	catalog         *Catalog
	clock           Clock
	notifier        Notifier
	reverseOnDelete bool
}

type TransactionOptions struct {
	Clock    Clock
	Notifier Notifier
	// ReverseOnDelete undoes the kasbon effect of a deleted transaction.
	ReverseOnDelete bool
}

func NewTransactionService(st store.Store, catalog *Catalog, opts TransactionOptions) *TransactionService {
	s := &TransactionService{
		store:           st,
		catalog:         catalog,
		clock:           opts.Clock,
		notifier:        opts.Notifier,
		reverseOnDelete: opts.ReverseOnDelete,
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	return s
}

func (s *TransactionService) ReverseOnDelete() bool { return s.reverseOnDelete }

func buildTransaction(in models.TransactionInput) (models.Transaction, error) {
	date, err := parseDate("date", strings.TrimSpace(in.Date))
	if err != nil {
		return models.Transaction{}, err
	}
	t := models.Transaction{
		Date:      date,
		ItemName:  strings.TrimSpace(in.ItemName),
		Type:      strings.TrimSpace(in.Type),
		Quantity:  strings.TrimSpace(in.Quantity),
		Unit:      strings.TrimSpace(in.Unit),
		Amount:    in.Amount,
		Note:      in.Note,
		ExtraNote: in.ExtraNote,
	}
	if t.ItemName == "" {
		return t, invalid("item_name", "is required")
	}
	if t.Type == "" {
		return t, invalid("type", "is required")
	}
	if t.Amount.IsNegative() {
		return t, invalid("amount", "must not be negative")
	}
	return t, nil
}

// Add records a transaction. A kasbon repayment larger than the balance
// owed is rejected and nothing is stored.
func (s *TransactionService) Add(ctx context.Context, in models.TransactionInput) (models.Transaction, error) {
	t, err := buildTransaction(in)
	if err != nil {
		return t, err
	}

	err = s.store.WithTx(ctx, func(q store.Queries) error {
		if err := q.InsertTransaction(ctx, &t); err != nil {
			return err
		}
		if !TouchesPayable(t.Type) {
			return nil
		}
		p, err := q.LockPayable(ctx)
		if err != nil {
			return err
		}
		next, err := ApplyPayable(p.TotalOwed, t.Type, t.Amount)
		if err != nil {
			return err
		}
		utils.LogPayableChange(t.Type, p.TotalOwed, next)
		return q.SavePayable(ctx, next)
	})
	if err != nil {
		return models.Transaction{}, err
	}

	utils.LogLedgerAction("created", t.ID, t.Type, t.Amount)
	s.notifier.Notify("transaction", "created", t.ID)
	return t, nil
}

// Edit replaces the fields of a transaction. The kasbon effect of the old
// values is reversed and the new one applied in the same unit of work.
func (s *TransactionService) Edit(ctx context.Context, id int64, in models.TransactionInput) (models.Transaction, error) {
	t, err := buildTransaction(in)
	if err != nil {
		return t, err
	}
	t.ID = id

	err = s.store.WithTx(ctx, func(q store.Queries) error {
		// Taking the payable lock first serialises concurrent edits of
		// the same row.
		p, err := q.LockPayable(ctx)
		if err != nil {
			return err
		}
		old, err := q.GetTransaction(ctx, id)
		if err != nil {
			return notFound(err, "transaction", id)
		}
		if TouchesPayable(old.Type) || TouchesPayable(t.Type) {
			next, err := RebalancePayable(p.TotalOwed, old, t)
			if err != nil {
				return err
			}
			if !next.Equal(p.TotalOwed) {
				utils.LogPayableChange("edit", p.TotalOwed, next)
				if err := q.SavePayable(ctx, next); err != nil {
					return err
				}
			}
		}
		return notFound(q.UpdateTransaction(ctx, &t), "transaction", id)
	})
	if err != nil {
		return models.Transaction{}, err
	}

	utils.LogLedgerAction("updated", t.ID, t.Type, t.Amount)
	s.notifier.Notify("transaction", "updated", t.ID)
	return t, nil
}

// Delete removes a transaction. Its kasbon effect stays in the balance
// unless the service was built with ReverseOnDelete.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(q store.Queries) error {
		p, err := q.LockPayable(ctx)
		if err != nil {
			return err
		}
		old, err := q.GetTransaction(ctx, id)
		if err != nil {
			return notFound(err, "transaction", id)
		}
		if s.reverseOnDelete && TouchesPayable(old.Type) {
			next, err := RemovePayable(p.TotalOwed, old)
			if err != nil {
				return err
			}
			utils.LogPayableChange("delete", p.TotalOwed, next)
			if err := q.SavePayable(ctx, next); err != nil {
				return err
			}
		}
		return notFound(q.DeleteTransaction(ctx, id), "transaction", id)
	})
	if err != nil {
		return err
	}

	utils.LogLedgerAction("deleted", id, "", decimal.Zero)
	s.notifier.Notify("transaction", "deleted", id)
	return nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (models.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	return t, notFound(err, "transaction", id)
}

// List returns the cashflow page: transactions of the period in ascending
// order, their bucket totals, the kasbon balance and the year selector.
// A month without a year means that month of the current year.
func (s *TransactionService) List(ctx context.Context, month, year int) (models.TransactionList, error) {
	if err := checkPeriod(month, year); err != nil {
		return models.TransactionList{}, err
	}
	year = currentYear(month, year, s.clock())
	f := models.TransactionFilter{Month: month, Year: year}
	txs, err := s.store.ListTransactions(ctx, f)
	if err != nil {
		return models.TransactionList{}, err
	}
	payable, err := s.Payable(ctx)
	if err != nil {
		return models.TransactionList{}, err
	}
	years, err := s.Years(ctx)
	if err != nil {
		return models.TransactionList{}, err
	}
	return models.TransactionList{
		Transactions: txs,
		Summary:      Aggregate(s.catalog, txs, f),
		Payable:      payable,
		Years:        years,
		Month:        month,
		Year:         year,
	}, nil
}

// Summary returns bucket totals for the period, resolved the same way as
// List.
func (s *TransactionService) Summary(ctx context.Context, month, year int) (models.PeriodSummary, error) {
	if err := checkPeriod(month, year); err != nil {
		return models.PeriodSummary{}, err
	}
	year = currentYear(month, year, s.clock())
	f := models.TransactionFilter{Month: month, Year: year}
	txs, err := s.store.ListTransactions(ctx, f)
	if err != nil {
		return models.PeriodSummary{}, err
	}
	return Aggregate(s.catalog, txs, f), nil
}

// Years lists years that have data plus two years either side of now.
func (s *TransactionService) Years(ctx context.Context) ([]int, error) {
	stored, err := s.store.TransactionYears(ctx)
	if err != nil {
		return nil, err
	}
	current := s.clock().Year()
	seen := make(map[int]bool)
	for y := current - 2; y <= current+2; y++ {
		seen[y] = true
	}
	for _, y := range stored {
		seen[y] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (s *TransactionService) Payable(ctx context.Context) (models.PayableState, error) {
	return s.store.GetPayable(ctx)
}
