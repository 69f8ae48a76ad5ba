package services

import (
	"context"
	"strings"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/shopspring/decimal"
)

type InvoiceService struct {
	store    store.Store
	notifier Notifier
}

func NewInvoiceService(st store.Store, notifier Notifier) *InvoiceService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &InvoiceService{store: st, notifier: notifier}
}

// buildInvoice validates the header and computes line subtotals and the
// total. Rows with an empty item are dropped.
func buildInvoice(in models.InvoiceInput) (models.Invoice, error) {
	date, err := parseDate("date", strings.TrimSpace(in.Date))
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Invoice{
		Number:   strings.TrimSpace(in.Number),
		Customer: strings.TrimSpace(in.Customer),
		Date:     date,
		Address:  in.Address,
		Note:     in.Note,
		Total:    decimal.Zero,
		Lines:    []models.InvoiceLine{},
	}
	if inv.Number == "" {
		return inv, invalid("number", "is required")
	}
	if inv.Customer == "" {
		return inv, invalid("customer", "is required")
	}

	for _, l := range in.Lines {
		item := strings.TrimSpace(l.Item)
		if item == "" {
			continue
		}
		if !l.Quantity.IsPositive() {
			return inv, invalid("lines", "quantity of %q must be positive", item)
		}
		if l.UnitPrice.IsNegative() {
			return inv, invalid("lines", "unit price of %q must not be negative", item)
		}
		subtotal := l.Quantity.Mul(l.UnitPrice).Round(2)
		inv.Lines = append(inv.Lines, models.InvoiceLine{
			Item:      item,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  subtotal,
		})
		inv.Total = inv.Total.Add(subtotal)
	}
	if len(inv.Lines) == 0 {
		return inv, invalid("lines", "at least one line is required")
	}
	return inv, nil
}

func (s *InvoiceService) Create(ctx context.Context, in models.InvoiceInput) (models.Invoice, error) {
	inv, err := buildInvoice(in)
	if err != nil {
		return inv, err
	}
	err = s.store.WithTx(ctx, func(q store.Queries) error {
		return q.InsertInvoice(ctx, &inv)
	})
	if err != nil {
		return models.Invoice{}, duplicate(err, "invoice number %s already exists", inv.Number)
	}
	utils.SafeInfo("🧾 Invoice %s created for %s (%s)", inv.Number, inv.Customer, utils.FormatRupiah(inv.Total))
	s.notifier.Notify("invoice", "created", inv.ID)
	return inv, nil
}

// Update replaces header and lines; the total is recomputed.
func (s *InvoiceService) Update(ctx context.Context, id int64, in models.InvoiceInput) (models.Invoice, error) {
	inv, err := buildInvoice(in)
	if err != nil {
		return inv, err
	}
	inv.ID = id
	err = s.store.WithTx(ctx, func(q store.Queries) error {
		return q.UpdateInvoice(ctx, &inv)
	})
	if err != nil {
		return models.Invoice{}, notFound(duplicate(err, "invoice number %s already exists", inv.Number), "invoice", id)
	}
	s.notifier.Notify("invoice", "updated", id)
	return inv, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		return notFound(err, "invoice", id)
	}
	s.notifier.Notify("invoice", "deleted", id)
	return nil
}

func (s *InvoiceService) Get(ctx context.Context, id int64) (models.Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	return inv, notFound(err, "invoice", id)
}

func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	return s.store.ListInvoices(ctx)
}
