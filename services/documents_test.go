package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store/memory"
)

func invoiceInput(number string, lines ...models.InvoiceLineInput) models.InvoiceInput {
	return models.InvoiceInput{Number: number, Customer: "Ibu Rina", Date: "2024-04-02", Lines: lines}
}

func TestInvoiceTotals(t *testing.T) {
	svc := NewInvoiceService(memory.New(), nil)
	ctx := context.Background()

	inv, err := svc.Create(ctx, invoiceInput("INV-001",
		models.InvoiceLineInput{Item: "Kursi Jati", Quantity: dec("4"), UnitPrice: dec("750000")},
		models.InvoiceLineInput{Item: "  ", Quantity: dec("1"), UnitPrice: dec("1")},
		models.InvoiceLineInput{Item: "Pelitur", Quantity: dec("1.5"), UnitPrice: dec("33333.33")},
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(inv.Lines) != 2 {
		t.Fatalf("lines = %+v", inv.Lines)
	}
	if !inv.Lines[1].Subtotal.Equal(dec("50000")) {
		t.Errorf("rounded subtotal = %s, want 50000", inv.Lines[1].Subtotal)
	}
	if !inv.Total.Equal(dec("3050000")) {
		t.Errorf("total = %s, want 3050000", inv.Total)
	}

	_, err = svc.Create(ctx, invoiceInput("INV-001", models.InvoiceLineInput{Item: "Meja", Quantity: dec("1"), UnitPrice: dec("1")}))
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Errorf("duplicate number error = %v", err)
	}

	updated, err := svc.Update(ctx, inv.ID, invoiceInput("INV-001", models.InvoiceLineInput{Item: "Meja", Quantity: dec("2"), UnitPrice: dec("1200000")}))
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Total.Equal(dec("2400000")) || len(updated.Lines) != 1 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestInvoiceValidation(t *testing.T) {
	svc := NewInvoiceService(memory.New(), nil)
	cases := map[string]models.InvoiceInput{
		"no lines":       invoiceInput("A"),
		"blank lines":    invoiceInput("A", models.InvoiceLineInput{Item: "", Quantity: dec("1")}),
		"zero quantity":  invoiceInput("A", models.InvoiceLineInput{Item: "x", Quantity: dec("0")}),
		"negative price": invoiceInput("A", models.InvoiceLineInput{Item: "x", Quantity: dec("1"), UnitPrice: dec("-1")}),
		"no number":      invoiceInput("", models.InvoiceLineInput{Item: "x", Quantity: dec("1")}),
	}
	for name, in := range cases {
		var ve *ValidationError
		if _, err := svc.Create(context.Background(), in); !errors.As(err, &ve) {
			t.Errorf("%s: error = %v, want ValidationError", name, err)
		}
	}
}

func TestBudgetCodesAndStatus(t *testing.T) {
	svc := NewBudgetService(memory.New(), nil)
	ctx := context.Background()
	in := models.BudgetInput{
		ProjectName: "Kitchen Set", ClientName: "Pak Hadi", Date: "2024-05-01",
		Lines: []models.BudgetLineInput{
			{Category: "Material", Item: "Multiplek 18mm", Quantity: dec("6"), UnitPrice: dec("210000")},
			{Category: "Jasa", Item: "Pemasangan", Quantity: dec("1"), Unit: "ls", UnitPrice: dec("1500000")},
		},
	}

	first, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if first.Code != "RAB-0001" || second.Code != "RAB-0002" {
		t.Errorf("codes = %s, %s", first.Code, second.Code)
	}
	if first.Status != models.BudgetDraft || first.Lines[0].Unit != "unit" || first.Lines[1].Unit != "ls" {
		t.Errorf("defaults = %+v", first)
	}
	if !first.Total.Equal(dec("2760000")) {
		t.Errorf("total = %s", first.Total)
	}

	in.ProjectName = "Kitchen Set Revisi"
	updated, err := svc.Update(ctx, first.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Get(ctx, updated.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Code != "RAB-0001" || got.ProjectName != "Kitchen Set Revisi" {
		t.Errorf("after update = %s %s", got.Code, got.ProjectName)
	}

	approved, err := svc.SetStatus(ctx, first.ID, models.BudgetApproved)
	if err != nil || approved.Status != models.BudgetApproved {
		t.Errorf("SetStatus = %+v, %v", approved.Status, err)
	}
	var ve *ValidationError
	if _, err := svc.SetStatus(ctx, first.ID, "DONE"); !errors.As(err, &ve) {
		t.Errorf("bad status error = %v", err)
	}
	var nf *NotFoundError
	if _, err := svc.SetStatus(ctx, 999, models.BudgetReview); !errors.As(err, &nf) {
		t.Errorf("missing budget error = %v", err)
	}
	if err := svc.Delete(ctx, second.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, second.ID); !errors.As(err, &nf) {
		t.Errorf("get deleted error = %v", err)
	}
}

func TestAssetService(t *testing.T) {
	svc := NewAssetService(memory.New(), fixedClock(date(2024, time.June, 1)), nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.AssetInput{
		Name: "Mesin Serut", AcquiredOn: "2021-02-01", Cost: dec("12000000"), Salvage: dec("2000000"), LifeYears: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	incomplete, err := svc.Create(ctx, models.AssetInput{Name: "Rak Lama", AcquiredOn: "2019-01-01"})
	if err != nil {
		t.Fatalf("asset without cost rejected: %v", err)
	}

	view, err := svc.Depreciation(ctx, a.ID, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if !view.BookValue.Equal(dec("6000000")) {
		t.Errorf("book value = %s, want 6000000", view.BookValue)
	}

	view, err = svc.Depreciation(ctx, incomplete.ID, time.Time{})
	if err != nil || view.Computable {
		t.Errorf("incomplete asset view = %+v, %v", view, err)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %d, %v", len(list), err)
	}

	var ve *ValidationError
	_, err = svc.Create(ctx, models.AssetInput{Name: "X", AcquiredOn: "2024-01-01", Cost: dec("100"), Salvage: dec("100"), LifeYears: 2})
	if !errors.As(err, &ve) || ve.Field != "salvage" {
		t.Errorf("salvage >= cost error = %v", err)
	}
	var nf *NotFoundError
	if _, err := svc.Depreciation(ctx, 999, time.Time{}); !errors.As(err, &nf) {
		t.Errorf("missing asset error = %v", err)
	}
}
