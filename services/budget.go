package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/shopspring/decimal"
)

// BudgetService manages RAB documents.
type BudgetService struct {
	store    store.Store
	notifier Notifier
}

func NewBudgetService(st store.Store, notifier Notifier) *BudgetService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &BudgetService{store: st, notifier: notifier}
}

const defaultBudgetUnit = "unit"

// BudgetCode formats the sequence number of a RAB.
func BudgetCode(n int64) string {
	return fmt.Sprintf("RAB-%04d", n)
}

func buildBudget(in models.BudgetInput) (models.Budget, error) {
	date, err := parseDate("date", strings.TrimSpace(in.Date))
	if err != nil {
		return models.Budget{}, err
	}
	b := models.Budget{
		ProjectName: strings.TrimSpace(in.ProjectName),
		ClientName:  strings.TrimSpace(in.ClientName),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		Date:        date,
		Status:      in.Status,
		Total:       decimal.Zero,
		Lines:       []models.BudgetLine{},
	}
	if b.ProjectName == "" {
		return b, invalid("project_name", "is required")
	}
	if b.ClientName == "" {
		return b, invalid("client_name", "is required")
	}
	if b.Status == "" {
		b.Status = models.BudgetDraft
	}
	if !b.Status.Valid() {
		return b, invalid("status", "unknown status %q", b.Status)
	}

	for _, l := range in.Lines {
		item := strings.TrimSpace(l.Item)
		if item == "" {
			continue
		}
		if l.Quantity.IsNegative() || l.UnitPrice.IsNegative() {
			return b, invalid("lines", "quantity and unit price of %q must not be negative", item)
		}
		unit := strings.TrimSpace(l.Unit)
		if unit == "" {
			unit = defaultBudgetUnit
		}
		total := l.Quantity.Mul(l.UnitPrice).Round(2)
		b.Lines = append(b.Lines, models.BudgetLine{
			Category:  strings.TrimSpace(l.Category),
			Item:      item,
			Spec:      l.Spec,
			Quantity:  l.Quantity,
			Unit:      unit,
			UnitPrice: l.UnitPrice,
			Total:     total,
		})
		b.Total = b.Total.Add(total)
	}
	return b, nil
}

// Create stores a RAB under the next free code.
func (s *BudgetService) Create(ctx context.Context, in models.BudgetInput) (models.Budget, error) {
	b, err := buildBudget(in)
	if err != nil {
		return b, err
	}
	err = s.store.WithTx(ctx, func(q store.Queries) error {
		n, err := q.NextBudgetNumber(ctx)
		if err != nil {
			return err
		}
		b.Code = BudgetCode(n)
		return q.InsertBudget(ctx, &b)
	})
	if err != nil {
		return models.Budget{}, duplicate(err, "budget code %s already exists", b.Code)
	}
	utils.SafeInfo("📐 RAB %s created: %s (%s)", b.Code, b.ProjectName, utils.FormatRupiah(b.Total))
	s.notifier.Notify("budget", "created", b.ID)
	return b, nil
}

// Update replaces the header and lines. The code never changes.
func (s *BudgetService) Update(ctx context.Context, id int64, in models.BudgetInput) (models.Budget, error) {
	b, err := buildBudget(in)
	if err != nil {
		return b, err
	}
	b.ID = id
	err = s.store.WithTx(ctx, func(q store.Queries) error {
		return q.UpdateBudget(ctx, &b)
	})
	if err != nil {
		return models.Budget{}, notFound(err, "budget", id)
	}
	s.notifier.Notify("budget", "updated", id)
	return b, nil
}

func (s *BudgetService) SetStatus(ctx context.Context, id int64, status models.BudgetStatus) (models.Budget, error) {
	if !status.Valid() {
		return models.Budget{}, invalid("status", "unknown status %q", status)
	}
	if err := s.store.UpdateBudgetStatus(ctx, id, status); err != nil {
		return models.Budget{}, notFound(err, "budget", id)
	}
	s.notifier.Notify("budget", "status", id)
	return s.Get(ctx, id)
}

func (s *BudgetService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return notFound(err, "budget", id)
	}
	s.notifier.Notify("budget", "deleted", id)
	return nil
}

func (s *BudgetService) Get(ctx context.Context, id int64) (models.Budget, error) {
	b, err := s.store.GetBudget(ctx, id)
	return b, notFound(err, "budget", id)
}

func (s *BudgetService) List(ctx context.Context) ([]models.Budget, error) {
	return s.store.ListBudgets(ctx)
}
