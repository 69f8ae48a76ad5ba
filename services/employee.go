package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/shopspring/decimal"
)

type EmployeeService struct {
	store    store.Store
	clock    Clock
	notifier Notifier
}

func NewEmployeeService(st store.Store, clock Clock, notifier Notifier) *EmployeeService {
	if clock == nil {
		clock = SystemClock
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &EmployeeService{store: st, clock: clock, notifier: notifier}
}

var employeeStatuses = map[string]bool{
	models.EmployeePermanent: true,
	models.EmployeeContract:  true,
	models.EmployeeProbation: true,
	models.EmployeeDaily:     true,
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func buildEmployee(in models.EmployeeInput) (models.Employee, error) {
	joined, err := parseDate("joined_on", strings.TrimSpace(in.JoinedOn))
	if err != nil {
		return models.Employee{}, err
	}
	birth, err := parseOptionalDate("birth_date", strings.TrimSpace(in.BirthDate))
	if err != nil {
		return models.Employee{}, err
	}

	e := models.Employee{
		Name:          strings.TrimSpace(in.Name),
		Position:      strings.TrimSpace(in.Position),
		Division:      strings.TrimSpace(in.Division),
		Status:        strings.ToUpper(strings.TrimSpace(in.Status)),
		BaseSalary:    in.BaseSalary,
		BirthPlace:    strings.TrimSpace(in.BirthPlace),
		BirthDate:     birth,
		Address:       in.Address,
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Bank:          strings.TrimSpace(in.Bank),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		NPWP:          strings.TrimSpace(in.NPWP),
		Education:     strings.TrimSpace(in.Education),
		MaritalStatus: strings.TrimSpace(in.MaritalStatus),
		JoinedOn:      joined,
		Note:          in.Note,
		Photo:         strings.TrimSpace(in.Photo),
	}
	if nik := strings.TrimSpace(in.NIK); nik != "" {
		if !digitsOnly(nik) {
			return e, invalid("nik", "must contain digits only")
		}
		e.NIK = &nik
	}
	if e.Name == "" {
		return e, invalid("name", "is required")
	}
	if e.Position == "" {
		return e, invalid("position", "is required")
	}
	if e.Status == "" {
		e.Status = models.EmployeePermanent
	}
	if !employeeStatuses[e.Status] {
		return e, invalid("status", "unknown employment status %q", e.Status)
	}
	if !e.BaseSalary.IsPositive() {
		return e, invalid("base_salary", "must be greater than zero")
	}
	return e, nil
}

func nikConflict(err error, e models.Employee) error {
	if e.NIK == nil {
		return err
	}
	return duplicate(err, "NIK %s is already registered", *e.NIK)
}

func (s *EmployeeService) Create(ctx context.Context, in models.EmployeeInput) (models.Employee, error) {
	e, err := buildEmployee(in)
	if err != nil {
		return e, err
	}
	if err := s.store.InsertEmployee(ctx, &e); err != nil {
		return models.Employee{}, nikConflict(err, e)
	}
	utils.SafeInfo("👤 Employee %d created: %s (%s)", e.ID, e.Name, e.Position)
	s.notifier.Notify("employee", "created", e.ID)
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, in models.EmployeeInput) (models.Employee, error) {
	e, err := buildEmployee(in)
	if err != nil {
		return e, err
	}
	e.ID = id
	if err := s.store.UpdateEmployee(ctx, &e); err != nil {
		return models.Employee{}, notFound(nikConflict(err, e), "employee", id)
	}
	s.notifier.Notify("employee", "updated", id)
	return e, nil
}

// Delete refuses while payroll slips still reference the employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteEmployee(ctx, id)
	if errors.Is(err, store.ErrInUse) {
		return &ConflictError{Message: "employee has payroll slips; delete them first"}
	}
	if err != nil {
		return notFound(err, "employee", id)
	}
	s.notifier.Notify("employee", "deleted", id)
	return nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (models.Employee, error) {
	e, err := s.store.GetEmployee(ctx, id)
	return e, notFound(err, "employee", id)
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// Report summarises the workforce.
func (s *EmployeeService) Report(ctx context.Context) (models.EmployeeReport, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return models.EmployeeReport{}, err
	}
	return BuildEmployeeReport(employees, s.clock()), nil
}

func BuildEmployeeReport(employees []models.Employee, now time.Time) models.EmployeeReport {
	r := models.EmployeeReport{
		Total:           len(employees),
		ByStatus:        []models.CountByKey{},
		ByPosition:      []models.CountByKey{},
		TotalBaseSalary: decimal.Zero,
	}
	byStatus := make(map[string]int)
	byPosition := make(map[string]int)

	for i := range employees {
		e := &employees[i]
		byStatus[e.Status]++
		byPosition[e.Position]++
		r.TotalBaseSalary = r.TotalBaseSalary.Add(e.BaseSalary)

		if r.HighestPaid == nil || e.BaseSalary.GreaterThan(r.HighestPaid.BaseSalary) {
			r.HighestPaid = e
		}
		if r.LowestPaid == nil || e.BaseSalary.LessThan(r.LowestPaid.BaseSalary) {
			r.LowestPaid = e
		}
		if r.LongestServing == nil || e.JoinedOn.Before(r.LongestServing.JoinedOn) {
			r.LongestServing = e
		}
	}

	r.ByStatus = countsOf(byStatus)
	r.ByPosition = countsOf(byPosition)
	if r.LongestServing != nil {
		r.LongestTenure = Tenure(r.LongestServing.JoinedOn, now)
	}
	return r
}

// countsOf sorts by descending count, then key.
func countsOf(m map[string]int) []models.CountByKey {
	out := make([]models.CountByKey, 0, len(m))
	for k, n := range m {
		out = append(out, models.CountByKey{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Tenure renders the whole years and months between from and now, e.g.
// "3 tahun 2 bulan".
func Tenure(from, now time.Time) string {
	months := (now.Year()-from.Year())*12 + int(now.Month()) - int(from.Month())
	if now.Day() < from.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return fmt.Sprintf("%d tahun %d bulan", months/12, months%12)
}
