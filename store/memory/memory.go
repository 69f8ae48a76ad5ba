// Package memory is an in-process store backend. Write transactions are
// serialised and roll back by restoring a snapshot.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"

	"github.com/shopspring/decimal"
)

type driver struct{}

func init() {
	store.Register("memory", driver{})
}

func (driver) Open(ctx context.Context, dsn string) (store.Store, error) {
	return New(), nil
}

type data struct {
	transactions map[int64]models.Transaction
	payable      *models.PayableState
	assets       map[int64]models.Asset
	invoices     map[int64]models.Invoice
	budgets      map[int64]models.Budget
	employees    map[int64]models.Employee
	payroll      map[int64]models.PayrollSlip

	lastID    int64
	budgetSeq int64
}

func newData() *data {
	return &data{
		transactions: make(map[int64]models.Transaction),
		assets:       make(map[int64]models.Asset),
		invoices:     make(map[int64]models.Invoice),
		budgets:      make(map[int64]models.Budget),
		employees:    make(map[int64]models.Employee),
		payroll:      make(map[int64]models.PayrollSlip),
	}
}

// clone copies the maps. Stored values are never mutated in place, so the
// line slices they hold can be shared.
func (d *data) clone() *data {
	c := *d
	c.transactions = cloneMap(d.transactions)
	c.assets = cloneMap(d.assets)
	c.invoices = cloneMap(d.invoices)
	c.budgets = cloneMap(d.budgets)
	c.employees = cloneMap(d.employees)
	c.payroll = cloneMap(d.payroll)
	if d.payable != nil {
		p := *d.payable
		c.payable = &p
	}
	return &c
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *data) nextID() int64 {
	d.lastID++
	return d.lastID
}

// Store keeps everything in memory. The zero value is not usable; call New.
type Store struct {
	queries
	txMu sync.Mutex
	mu   sync.RWMutex
	d    *data
	now  func() time.Time
}

// New returns an empty store.
func New() *Store {
	s := &Store{d: newData(), now: time.Now}
	s.queries = queries{s: s}
	return s
}

// SetClock replaces the timestamp source used for created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) WithTx(ctx context.Context, fn func(q store.Queries) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(queries{s: s, inTx: true}); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

type queries struct {
	s    *Store
	inTx bool
}

func (q queries) read(fn func(d *data) error) error {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	return fn(q.s.d)
}

func (q queries) write(fn func(d *data) error) error {
	if !q.inTx {
		q.s.txMu.Lock()
		defer q.s.txMu.Unlock()
	}
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return fn(q.s.d)
}

// ============================================================================
// TRANSACTIONS
// ============================================================================

func (q queries) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	return q.write(func(d *data) error {
		now := q.s.now()
		t.ID = d.nextID()
		t.CreatedAt, t.UpdatedAt = now, now
		d.transactions[t.ID] = *t
		return nil
	})
}

func (q queries) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	return q.write(func(d *data) error {
		old, ok := d.transactions[t.ID]
		if !ok {
			return store.ErrNotFound
		}
		t.CreatedAt = old.CreatedAt
		t.UpdatedAt = q.s.now()
		d.transactions[t.ID] = *t
		return nil
	})
}

func (q queries) DeleteTransaction(ctx context.Context, id int64) error {
	return q.write(func(d *data) error {
		if _, ok := d.transactions[id]; !ok {
			return store.ErrNotFound
		}
		delete(d.transactions, id)
		return nil
	})
}

func (q queries) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	var t models.Transaction
	err := q.read(func(d *data) error {
		var ok bool
		if t, ok = d.transactions[id]; !ok {
			return store.ErrNotFound
		}
		return nil
	})
	return t, err
}

func (q queries) ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	out := []models.Transaction{}
	err := q.read(func(d *data) error {
		for _, t := range d.transactions {
			if matches(t, f) {
				out = append(out, t)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func matches(t models.Transaction, f models.TransactionFilter) bool {
	if f.Year != 0 && t.Date.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(t.Date.Month()) != f.Month {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Date.Before(f.To) {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, typ := range f.Types {
		if typ == t.Type {
			return true
		}
	}
	return false
}

func (q queries) TransactionYears(ctx context.Context) ([]int, error) {
	seen := make(map[int]bool)
	err := q.read(func(d *data) error {
		for _, t := range d.transactions {
			seen[t.Date.Year()] = true
		}
		return nil
	})
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, err
}

func (q queries) RenameTransactionType(ctx context.Context, from, to string) (int64, error) {
	var n int64
	err := q.write(func(d *data) error {
		for id, t := range d.transactions {
			if t.Type == from {
				t.Type = to
				t.UpdatedAt = q.s.now()
				d.transactions[id] = t
				n++
			}
		}
		return nil
	})
	return n, err
}

// ============================================================================
// PAYABLE
// ============================================================================

func (q queries) LockPayable(ctx context.Context) (models.PayableState, error) {
	var p models.PayableState
	err := q.write(func(d *data) error {
		if d.payable == nil {
			d.payable = &models.PayableState{TotalOwed: decimal.Zero, UpdatedAt: q.s.now()}
		}
		p = *d.payable
		return nil
	})
	return p, err
}

func (q queries) GetPayable(ctx context.Context) (models.PayableState, error) {
	p := models.PayableState{TotalOwed: decimal.Zero}
	err := q.read(func(d *data) error {
		if d.payable != nil {
			p = *d.payable
		}
		return nil
	})
	return p, err
}

func (q queries) SavePayable(ctx context.Context, total decimal.Decimal) error {
	return q.write(func(d *data) error {
		d.payable = &models.PayableState{TotalOwed: total, UpdatedAt: q.s.now()}
		return nil
	})
}

// ============================================================================
// ASSETS
// ============================================================================

func (q queries) InsertAsset(ctx context.Context, a *models.Asset) error {
	return q.write(func(d *data) error {
		a.ID = d.nextID()
		a.CreatedAt = q.s.now()
		d.assets[a.ID] = *a
		return nil
	})
}

func (q queries) UpdateAsset(ctx context.Context, a *models.Asset) error {
	return q.write(func(d *data) error {
		old, ok := d.assets[a.ID]
		if !ok {
			return store.ErrNotFound
		}
		a.CreatedAt = old.CreatedAt
		d.assets[a.ID] = *a
		return nil
	})
}

func (q queries) DeleteAsset(ctx context.Context, id int64) error {
	return q.write(func(d *data) error {
		if _, ok := d.assets[id]; !ok {
			return store.ErrNotFound
		}
		delete(d.assets, id)
		return nil
	})
}

func (q queries) GetAsset(ctx context.Context, id int64) (models.Asset, error) {
	var a models.Asset
	err := q.read(func(d *data) error {
		var ok bool
		if a, ok = d.assets[id]; !ok {
			return store.ErrNotFound
		}
		return nil
	})
	return a, err
}

func (q queries) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	err := q.read(func(d *data) error {
		out = sortedValues(d.assets, func(a, b models.Asset) bool { return a.ID < b.ID })
		return nil
	})
	return out, err
}

func sortedValues[V any](m map[int64]V, less func(a, b V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ============================================================================
// INVOICES
// ============================================================================

func (q queries) InsertInvoice(ctx context.Context, inv *models.Invoice) error {
	return q.write(func(d *data) error {
		for _, other := range d.invoices {
			if other.Number == inv.Number {
				return store.ErrDuplicate
			}
		}
		inv.ID = d.nextID()
		inv.CreatedAt = q.s.now()
		inv.Lines = d.invoiceLines(inv.ID, inv.Lines)
		d.invoices[inv.ID] = *inv
		return nil
	})
}

func (d *data) invoiceLines(invoiceID int64, lines []models.InvoiceLine) []models.InvoiceLine {
	out := make([]models.InvoiceLine, len(lines))
	for i, l := range lines {
		l.ID = d.nextID()
		l.InvoiceID = invoiceID
		out[i] = l
	}
	return out
}

func (q queries) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	return q.write(func(d *data) error {
		old, ok := d.invoices[inv.ID]
		if !ok {
			return store.ErrNotFound
		}
		for id, other := range d.invoices {
			if id != inv.ID && other.Number == inv.Number {
				return store.ErrDuplicate
			}
		}
		inv.CreatedAt = old.CreatedAt
		inv.Lines = d.invoiceLines(inv.ID, inv.Lines)
		d.invoices[inv.ID] = *inv
		return nil
	})
}

func (q queries) DeleteInvoice(ctx context.Context, id int64) error {
	return q.write(func(d *data) error {
		if _, ok := d.invoices[id]; !ok {
			return store.ErrNotFound
		}
		delete(d.invoices, id)
		return nil
	})
}

func (q queries) GetInvoice(ctx context.Context, id int64) (models.Invoice, error) {
	var inv models.Invoice
	err := q.read(func(d *data) error {
		var ok bool
		if inv, ok = d.invoices[id]; !ok {
			return store.ErrNotFound
		}
		return nil
	})
	return inv, err
}

func (q queries) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	err := q.read(func(d *data) error {
		out = sortedValues(d.invoices, func(a, b models.Invoice) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return a.ID > b.ID
		})
		return nil
	})
	return out, err
}

func (q queries) CountInvoices(ctx context.Context) (int, error) {
	var n int
	err := q.read(func(d *data) error {
		n = len(d.invoices)
		return nil
	})
	return n, err
}

// ============================================================================
// BUDGETS (RAB)
// ============================================================================

func (q queries) NextBudgetNumber(ctx context.Context) (int64, error) {
	var n int64
	err := q.write(func(d *data) error {
		d.budgetSeq++
		n = d.budgetSeq
		return nil
	})
	return n, err
}

func (d *data) budgetLines(budgetID int64, lines []models.BudgetLine) []models.BudgetLine {
	out := make([]models.BudgetLine, len(lines))
	for i, l := range lines {
		l.ID = d.nextID()
		l.BudgetID = budgetID
		out[i] = l
	}
	return out
}

func (q queries) InsertBudget(ctx context.Context, b *models.Budget) error {
	return q.write(func(d *data) error {
		for _, other := range d.budgets {
			if other.Code == b.Code {
				return store.ErrDuplicate
			}
		}
		now := q.s.now()
		b.ID = d.nextID()
		b.CreatedAt, b.UpdatedAt = now, now
		b.Lines = d.budgetLines(b.ID, b.Lines)
		d.budgets[b.ID] = *b
		return nil
	})
}

func (q queries) UpdateBudget(ctx context.Context, b *models.Budget) error {
	return q.write(func(d *data) error {
		old, ok := d.budgets[b.ID]
		if !ok {
			return store.ErrNotFound
		}
		b.Code = old.Code
		b.CreatedAt = old.CreatedAt
		b.UpdatedAt = q.s.now()
		b.Lines = d.budgetLines(b.ID, b.Lines)
		d.budgets[b.ID] = *b
		return nil
	})
}

func (q queries) UpdateBudgetStatus(ctx context.Context, id int64, status models.BudgetStatus) error {
	return q.write(func(d *data) error {
		b, ok := d.budgets[id]
		if !ok {
			return store.ErrNotFound
		}
		b.Status = status
		b.UpdatedAt = q.s.now()
		d.budgets[id] = b
		return nil
	})
}

func (q queries) DeleteBudget(ctx context.Context, id int64) error {
	return q.write(func(d *data) error {
		if _, ok := d.budgets[id]; !ok {
			return store.ErrNotFound
		}
		delete(d.budgets, id)
		return nil
	})
}

func (q queries) GetBudget(ctx context.Context, id int64) (models.Budget, error) {
	var b models.Budget
	err := q.read(func(d *data) error {
		var ok bool
		if b, ok = d.budgets[id]; !ok {
			return store.ErrNotFound
		}
		return nil
	})
	return b, err
}

func (q queries) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	var out []models.Budget
	err := q.read(func(d *data) error {
		out = sortedValues(d.budgets, func(a, b models.Budget) bool { return a.ID > b.ID })
		return nil
	})
	return out, err
}

// ============================================================================
// EMPLOYEES
// ============================================================================

func (d *data) nikTaken(nik *string, except int64) bool {
	if nik == nil {
		return false
	}
	for id, e := range d.employees {
		if id != except && e.NIK != nil && *e.NIK == *nik {
			return true
		}
	}
	return false
}

func (q queries) InsertEmployee(ctx context.Context, e *models.Employee) error {
	return q.write(func(d *data) error {
		if d.nikTaken(e.NIK, 0) {
			return store.ErrDuplicate
		}
		now := q.s.now()
		e.ID = d.nextID()
		e.CreatedAt, e.UpdatedAt = now, now
		d.employees[e.ID] = *e
		return nil
	})
}

func (q queries) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	return q.write(func(d *data) error {
		old, ok := d.employees[e.ID]
		if !ok {
			return store.ErrNotFound
		}
		if d.nikTaken(e.NIK, e.ID) {
			return store.ErrDuplicate
		}
		e.CreatedAt = old.CreatedAt
		e.UpdatedAt = q.s.now()
		d.employees[e.ID] = *e
		return nil
	})
}

func (q queries) DeleteEmployee(ctx context.Context, id int64) error {
	return q.write(func(d *data) error {
		if _, ok := d.employees[id]; !ok {
			return store.ErrNotFound
		}
		for _, p := range d.payroll {
			if p.EmployeeID == id {
				return store.ErrInUse
			}
		}
		delete(d.employees, id)
		return nil
	})
}

func (q queries) GetEmployee(ctx context.Context, id int64) (models.Employee, error) {
	var e models.Employee
	err := q.read(func(d *data) error {
		var ok bool
		if e, ok = d.employees[id]; !ok {
			return store.ErrNotFound
		}
		return nil
	})
	return e, err
}

func (q queries) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := q.read(func(d *data) error {
		out = sortedValues(d.employees, func(a, b models.Employee) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
		return nil
	})
	return out, err
}

func (q queries) CountEmployees(ctx context.Context) (int, error) {
	var n int
	err := q.read(func(d *data) error {
		n = len(d.employees)
		return nil
	})
	return n, err
}

// ============================================================================
// PAYROLL
// ============================================================================

func (d *data) periodTaken(p *models.PayrollSlip) bool {
	for id, other := range d.payroll {
		if id != p.ID && other.EmployeeID == p.EmployeeID && other.Period == p.Period {
			return true
		}
	}
	return false
}

func (q queries) InsertPayroll(ctx context.Context, p *models.PayrollSlip) error {
	return q.write(func(d *data) error {
		e, ok := d.employees[p.EmployeeID]
		if !ok {
			return store.ErrNotFound
		}
		if d.periodTaken(p) {
			return store.ErrDuplicate
		}
		p.ID = d.nextID()
		p.CreatedAt = q.s.now()
		p.EmployeeName = e.Name
		d.payroll[p.ID] = *p
		return nil
	})
}

func (q queries) UpdatePayroll(ctx context.Context, p *models.PayrollSlip) error {
	return q.write(func(d *data) error {
		old, ok := d.payroll[p.ID]
		if !ok {
			return store.ErrNotFound
		}
		if d.periodTaken(p) {
			return store.ErrDuplicate
		}
		p.CreatedAt = old.CreatedAt
		p.EmployeeName = d.employees[p.EmployeeID].Name
		d.payroll[p.ID] = *p
		return nil
	})
}

func (q queries) DeletePayroll(ctx context.Context, id int64) error {
	return q.write(func(d *data) error {
		if _, ok := d.payroll[id]; !ok {
			return store.ErrNotFound
		}
		delete(d.payroll, id)
		return nil
	})
}

func (q queries) GetPayroll(ctx context.Context, id int64) (models.PayrollSlip, error) {
	var p models.PayrollSlip
	err := q.read(func(d *data) error {
		var ok bool
		if p, ok = d.payroll[id]; !ok {
			return store.ErrNotFound
		}
		p.EmployeeName = d.employees[p.EmployeeID].Name
		return nil
	})
	return p, err
}

func (q queries) ListPayroll(ctx context.Context, f models.PayrollFilter) ([]models.PayrollSlip, error) {
	out := []models.PayrollSlip{}
	err := q.read(func(d *data) error {
		for _, p := range d.payroll {
			if f.EmployeeID != 0 && p.EmployeeID != f.EmployeeID {
				continue
			}
			if f.Period != "" && p.Period != f.Period {
				continue
			}
			if f.Year != 0 && !periodInYear(p.Period, f.Year) {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			p.EmployeeName = d.employees[p.EmployeeID].Name
			out = append(out, p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period > out[j].Period
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func periodInYear(period string, year int) bool {
	t, err := time.Parse("2006-01", period)
	return err == nil && t.Year() == year
}
