package services

import (
	"context"
	"fmt"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/shopspring/decimal"
)

type PayrollService struct {
	store    store.Store
	clock    Clock
	notifier Notifier
}

func NewPayrollService(st store.Store, clock Clock, notifier Notifier) *PayrollService {
	if clock == nil {
		clock = SystemClock
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &PayrollService{store: st, clock: clock, notifier: notifier}
}

// Period formats a payroll period key.
func Period(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

type slipAmounts struct {
	base, allowance, bonus, deduction decimal.Decimal
}

func (a slipAmounts) validate() error {
	switch {
	case a.base.IsNegative():
		return invalid("base_salary", "must not be negative")
	case a.allowance.IsNegative():
		return invalid("allowance", "must not be negative")
	case a.bonus.IsNegative():
		return invalid("bonus", "must not be negative")
	case a.deduction.IsNegative():
		return invalid("deduction", "must not be negative")
	}
	if a.total().IsNegative() {
		return invalid("deduction", "exceeds the gross amount")
	}
	return nil
}

func (a slipAmounts) total() decimal.Decimal {
	return a.base.Add(a.allowance).Add(a.bonus).Sub(a.deduction)
}

func (s *PayrollService) fill(p *models.PayrollSlip, a slipAmounts) {
	p.BaseSalary, p.Allowance, p.Bonus, p.Deduction = a.base, a.allowance, a.bonus, a.deduction
	p.Total = a.total()
}

// Create issues a slip for one employee and period. The base salary
// defaults to the employee's current salary.
func (s *PayrollService) Create(ctx context.Context, in models.PayrollInput) (models.PayrollSlip, error) {
	if in.Month < 1 || in.Month > 12 {
		return models.PayrollSlip{}, invalid("month", "must be between 1 and 12")
	}
	if in.Year < 1900 || in.Year > 9999 {
		return models.PayrollSlip{}, invalid("year", "is out of range")
	}

	p := models.PayrollSlip{
		EmployeeID:    in.EmployeeID,
		Period:        Period(in.Year, in.Month),
		AllowanceNote: in.AllowanceNote,
		DeductionNote: in.DeductionNote,
		Status:        models.PayrollDraft,
	}
	err := s.store.WithTx(ctx, func(q store.Queries) error {
		e, err := q.GetEmployee(ctx, in.EmployeeID)
		if err != nil {
			return notFound(err, "employee", in.EmployeeID)
		}
		a := slipAmounts{base: in.BaseSalary, allowance: in.Allowance, bonus: in.Bonus, deduction: in.Deduction}
		if a.base.IsZero() {
			a.base = e.BaseSalary
		}
		if err := a.validate(); err != nil {
			return err
		}
		s.fill(&p, a)
		p.EmployeeName = e.Name
		return q.InsertPayroll(ctx, &p)
	})
	if err != nil {
		return models.PayrollSlip{}, duplicate(err, "payroll for employee %d in %s already exists", in.EmployeeID, p.Period)
	}
	utils.SafeInfo("💰 Payroll %s issued for %s: %s", p.Period, p.EmployeeName, utils.MaskAmount(p.Total))
	s.notifier.Notify("payroll", "created", p.ID)
	return p, nil
}

// Update edits amounts, notes and status. PaidAt is set on the first move
// to PAID and kept afterwards.
func (s *PayrollService) Update(ctx context.Context, id int64, in models.PayrollUpdate) (models.PayrollSlip, error) {
	var p models.PayrollSlip
	err := s.store.WithTx(ctx, func(q store.Queries) error {
		var err error
		p, err = q.GetPayroll(ctx, id)
		if err != nil {
			return notFound(err, "payroll slip", id)
		}
		a := slipAmounts{base: in.BaseSalary, allowance: in.Allowance, bonus: in.Bonus, deduction: in.Deduction}
		if a.base.IsZero() {
			a.base = p.BaseSalary
		}
		if err := a.validate(); err != nil {
			return err
		}
		s.fill(&p, a)
		p.AllowanceNote, p.DeductionNote = in.AllowanceNote, in.DeductionNote

		if in.Status != "" {
			if !in.Status.Valid() {
				return invalid("status", "unknown status %q", in.Status)
			}
			p.Status = in.Status
		}
		if p.Status == models.PayrollPaid && p.PaidAt == nil {
			now := s.clock()
			p.PaidAt = &now
		}
		return q.UpdatePayroll(ctx, &p)
	})
	if err != nil {
		return models.PayrollSlip{}, err
	}
	s.notifier.Notify("payroll", "updated", id)
	return p, nil
}

func (s *PayrollService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeletePayroll(ctx, id); err != nil {
		return notFound(err, "payroll slip", id)
	}
	s.notifier.Notify("payroll", "deleted", id)
	return nil
}

func (s *PayrollService) Get(ctx context.Context, id int64) (models.PayrollSlip, error) {
	p, err := s.store.GetPayroll(ctx, id)
	return p, notFound(err, "payroll slip", id)
}

// Summary lists matching slips with totals over the non-cancelled ones.
func (s *PayrollService) Summary(ctx context.Context, f models.PayrollFilter) (models.PayrollSummary, error) {
	if f.Status != "" && !f.Status.Valid() {
		return models.PayrollSummary{}, invalid("status", "unknown status %q", f.Status)
	}
	slips, err := s.store.ListPayroll(ctx, f)
	if err != nil {
		return models.PayrollSummary{}, err
	}
	return SummarisePayroll(slips), nil
}

func SummarisePayroll(slips []models.PayrollSlip) models.PayrollSummary {
	sum := models.PayrollSummary{
		Slips:          slips,
		TotalPaidOut:   decimal.Zero,
		TotalBase:      decimal.Zero,
		TotalAllowance: decimal.Zero,
		TotalBonus:     decimal.Zero,
		TotalDeduction: decimal.Zero,
		Average:        decimal.Zero,
	}
	counted := 0
	for _, p := range slips {
		if p.Period > sum.LatestPeriod {
			sum.LatestPeriod = p.Period
		}
		if p.Status == models.PayrollCancelled {
			continue
		}
		counted++
		sum.TotalPaidOut = sum.TotalPaidOut.Add(p.Total)
		sum.TotalBase = sum.TotalBase.Add(p.BaseSalary)
		sum.TotalAllowance = sum.TotalAllowance.Add(p.Allowance)
		sum.TotalBonus = sum.TotalBonus.Add(p.Bonus)
		sum.TotalDeduction = sum.TotalDeduction.Add(p.Deduction)
	}
	if counted > 0 {
		sum.Average = sum.TotalPaidOut.Div(decimal.NewFromInt(int64(counted))).Round(2)
	}
	return sum
}
