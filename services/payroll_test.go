package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store/memory"
)

func newPayrollFixture(t *testing.T) (*PayrollService, models.Employee) {
	t.Helper()
	st := memory.New()
	e, err := NewEmployeeService(st, nil, nil).Create(context.Background(),
		employeeInput("", "Budi", "Tukang", "3000000", "2020-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	return NewPayrollService(st, fixedClock(date(2024, time.June, 28)), nil), e
}

func TestPayrollCreate(t *testing.T) {
	svc, e := newPayrollFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, models.PayrollInput{
		EmployeeID: e.ID, Month: 6, Year: 2024,
		Allowance: dec("250000"), Bonus: dec("100000"), Deduction: dec("50000"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Period != "2024-06" || p.Status != models.PayrollDraft || p.EmployeeName != "Budi" {
		t.Errorf("slip = %+v", p)
	}
	if !p.BaseSalary.Equal(dec("3000000")) || !p.Total.Equal(dec("3300000")) {
		t.Errorf("base %s total %s", p.BaseSalary, p.Total)
	}

	_, err = svc.Create(ctx, models.PayrollInput{EmployeeID: e.ID, Month: 6, Year: 2024})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Errorf("duplicate period error = %v", err)
	}

	_, err = svc.Create(ctx, models.PayrollInput{EmployeeID: 999, Month: 6, Year: 2024})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("missing employee error = %v", err)
	}
}

func TestPayrollCreateValidates(t *testing.T) {
	svc, e := newPayrollFixture(t)
	cases := map[string]models.PayrollInput{
		"month 0":           {EmployeeID: e.ID, Month: 0, Year: 2024},
		"month 13":          {EmployeeID: e.ID, Month: 13, Year: 2024},
		"year":              {EmployeeID: e.ID, Month: 1, Year: 24},
		"negative bonus":    {EmployeeID: e.ID, Month: 1, Year: 2024, Bonus: dec("-1")},
		"deduction > gross": {EmployeeID: e.ID, Month: 1, Year: 2024, Deduction: dec("3000001")},
	}
	for name, in := range cases {
		var ve *ValidationError
		if _, err := svc.Create(context.Background(), in); !errors.As(err, &ve) {
			t.Errorf("%s: error = %v, want ValidationError", name, err)
		}
	}
}

func TestPayrollUpdatePaidAt(t *testing.T) {
	svc, e := newPayrollFixture(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, models.PayrollInput{EmployeeID: e.ID, Month: 6, Year: 2024})
	if err != nil {
		t.Fatal(err)
	}

	paid, err := svc.Update(ctx, p.ID, models.PayrollUpdate{Bonus: dec("500000"), Status: models.PayrollPaid})
	if err != nil {
		t.Fatal(err)
	}
	if paid.PaidAt == nil || !paid.PaidAt.Equal(date(2024, time.June, 28)) {
		t.Errorf("PaidAt = %v", paid.PaidAt)
	}
	if !paid.BaseSalary.Equal(dec("3000000")) || !paid.Total.Equal(dec("3500000")) {
		t.Errorf("base %s total %s", paid.BaseSalary, paid.Total)
	}

	again, err := svc.Update(ctx, p.ID, models.PayrollUpdate{Status: models.PayrollPaid})
	if err != nil {
		t.Fatal(err)
	}
	if again.PaidAt == nil || !again.PaidAt.Equal(*paid.PaidAt) {
		t.Errorf("PaidAt moved to %v", again.PaidAt)
	}

	var ve *ValidationError
	if _, err := svc.Update(ctx, p.ID, models.PayrollUpdate{Status: "LUNAS"}); !errors.As(err, &ve) {
		t.Errorf("bad status error = %v", err)
	}
	var nf *NotFoundError
	if _, err := svc.Update(ctx, 999, models.PayrollUpdate{}); !errors.As(err, &nf) {
		t.Errorf("missing slip error = %v", err)
	}
}

func TestPayrollSummary(t *testing.T) {
	svc, e := newPayrollFixture(t)
	ctx := context.Background()
	for month := 1; month <= 3; month++ {
		if _, err := svc.Create(ctx, models.PayrollInput{EmployeeID: e.ID, Month: month, Year: 2024}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Create(ctx, models.PayrollInput{EmployeeID: e.ID, Month: 12, Year: 2023, BaseSalary: dec("1000000")}); err != nil {
		t.Fatal(err)
	}

	all, err := svc.Summary(ctx, models.PayrollFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Slips) != 4 || all.LatestPeriod != "2024-03" || all.Slips[0].Period != "2024-03" {
		t.Errorf("all = %d slips, latest %s", len(all.Slips), all.LatestPeriod)
	}

	cancel := all.Slips[0]
	if _, err := svc.Update(ctx, cancel.ID, models.PayrollUpdate{Status: models.PayrollCancelled}); err != nil {
		t.Fatal(err)
	}
	year, err := svc.Summary(ctx, models.PayrollFilter{Year: 2024})
	if err != nil {
		t.Fatal(err)
	}
	if len(year.Slips) != 3 || !year.TotalPaidOut.Equal(dec("6000000")) || !year.Average.Equal(dec("3000000")) {
		t.Errorf("2024 summary: %d slips, paid %s, average %s", len(year.Slips), year.TotalPaidOut, year.Average)
	}

	var ve *ValidationError
	if _, err := svc.Summary(ctx, models.PayrollFilter{Status: "x"}); !errors.As(err, &ve) {
		t.Errorf("bad status filter error = %v", err)
	}
}

func TestSummarisePayrollEmpty(t *testing.T) {
	s := SummarisePayroll(nil)
	if !s.Average.IsZero() || !s.TotalPaidOut.IsZero() || s.LatestPeriod != "" {
		t.Errorf("empty summary = %+v", s)
	}
}
