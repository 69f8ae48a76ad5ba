package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"

	"github.com/shopspring/decimal"
)

func nik(s string) *string { return &s }

func TestWithTxRollsBack(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(q store.Queries) error {
		tr := models.Transaction{Date: time.Now(), ItemName: "x", Type: "IKLAN", Amount: decimal.NewFromInt(10)}
		if err := q.InsertTransaction(ctx, &tr); err != nil {
			return err
		}
		if err := q.SavePayable(ctx, decimal.NewFromInt(99)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v", err)
	}

	list, _ := s.ListTransactions(ctx, models.TransactionFilter{})
	if len(list) != 0 {
		t.Errorf("rolled back insert is visible: %+v", list)
	}
	p, _ := s.LockPayable(ctx)
	if !p.TotalOwed.IsZero() {
		t.Errorf("rolled back payable = %s", p.TotalOwed)
	}
}

func TestListTransactionsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, d := range []int{5, 1, 5, 3} {
		tr := models.Transaction{Date: time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC), Type: "IKLAN"}
		if err := s.InsertTransaction(ctx, &tr); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := s.ListTransactions(ctx, models.TransactionFilter{})
	want := []int64{2, 4, 1, 3}
	for i, tr := range list {
		if tr.ID != want[i] {
			t.Fatalf("order = %v, want ids %v", list, want)
		}
	}

	from := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)
	ranged, _ := s.ListTransactions(ctx, models.TransactionFilter{From: from, To: to})
	if len(ranged) != 1 || ranged[0].ID != 4 {
		t.Errorf("[from, to) = %+v", ranged)
	}
}

func TestEmployeeConstraints(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := models.Employee{Name: "Budi", NIK: nik("3201")}
	if err := s.InsertEmployee(ctx, &a); err != nil {
		t.Fatal(err)
	}
	b := models.Employee{Name: "Sari", NIK: nik("3201")}
	if err := s.InsertEmployee(ctx, &b); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("duplicate NIK error = %v", err)
	}
	b.NIK = nil
	if err := s.InsertEmployee(ctx, &b); err != nil {
		t.Fatal(err)
	}
	c := models.Employee{Name: "Tono"}
	if err := s.InsertEmployee(ctx, &c); err != nil {
		t.Errorf("second employee without NIK: %v", err)
	}

	slip := models.PayrollSlip{EmployeeID: a.ID, Period: "2024-01"}
	if err := s.InsertPayroll(ctx, &slip); err != nil {
		t.Fatal(err)
	}
	if slip.EmployeeName != "Budi" {
		t.Errorf("EmployeeName = %q", slip.EmployeeName)
	}
	dup := models.PayrollSlip{EmployeeID: a.ID, Period: "2024-01"}
	if err := s.InsertPayroll(ctx, &dup); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("duplicate period error = %v", err)
	}
	if err := s.DeleteEmployee(ctx, a.ID); !errors.Is(err, store.ErrInUse) {
		t.Errorf("delete referenced employee error = %v", err)
	}
	if err := s.DeleteEmployee(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete missing employee error = %v", err)
	}

	n, _ := s.CountEmployees(ctx)
	if n != 3 {
		t.Errorf("CountEmployees = %d, want 3", n)
	}
}

func TestPayrollListFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := models.Employee{Name: "Budi"}
	if err := s.InsertEmployee(ctx, &e); err != nil {
		t.Fatal(err)
	}
	for _, period := range []string{"2023-12", "2024-01", "2024-02"} {
		p := models.PayrollSlip{EmployeeID: e.ID, Period: period, Status: models.PayrollDraft}
		if err := s.InsertPayroll(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}

	list, _ := s.ListPayroll(ctx, models.PayrollFilter{Year: 2024})
	if len(list) != 2 || list[0].Period != "2024-02" {
		t.Errorf("2024 slips = %+v", list)
	}
	list, _ = s.ListPayroll(ctx, models.PayrollFilter{Period: "2023-12"})
	if len(list) != 1 {
		t.Errorf("period filter = %+v", list)
	}
	list, _ = s.ListPayroll(ctx, models.PayrollFilter{Status: models.PayrollPaid})
	if len(list) != 0 {
		t.Errorf("status filter = %+v", list)
	}
}

func TestDriverRegistered(t *testing.T) {
	st, err := store.Open(context.Background(), "memory", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Ping(context.Background()); err != nil {
		t.Errorf("Ping = %v", err)
	}
	if _, err := store.Open(context.Background(), "sqlite", ""); err == nil {
		t.Error("unknown driver opened")
	}
}

func TestGetPayableDoesNotCreateRow(t *testing.T) {
	s := New()
	ctx := context.Background()
	p, err := s.GetPayable(ctx)
	if err != nil || !p.TotalOwed.IsZero() {
		t.Fatalf("GetPayable on empty store = %+v, %v", p, err)
	}
	if s.d.payable != nil {
		t.Error("GetPayable created the payable row")
	}
	if err := s.SavePayable(ctx, decimal.NewFromInt(250)); err != nil {
		t.Fatal(err)
	}
	p, _ = s.GetPayable(ctx)
	if !p.TotalOwed.Equal(decimal.NewFromInt(250)) {
		t.Errorf("GetPayable = %s, want 250", p.TotalOwed)
	}
}
