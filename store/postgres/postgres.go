// Package postgres is the PostgreSQL store backend built on lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daniarfurniture/finance-api/config"
	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type driver struct{}

func init() {
	store.Register("postgres", driver{})
}

func (driver) Open(ctx context.Context, dsn string) (store.Store, error) {
	maxOpen, maxIdle := 25, 5
	if c := config.Get(); c != nil {
		maxOpen, maxIdle = c.Database.MaxOpenConns, c.Database.MaxIdleConns
	}
	db, err := config.InitDB(ctx, dsn, maxOpen, maxIdle)
	if err != nil {
		return nil, err
	}
	if err := config.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return New(db), nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store wraps an open *sql.DB.
type Store struct {
	queries
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

func (s *Store) WithTx(ctx context.Context, fn func(q store.Queries) error) error {
	return utils.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return fn(queries{q: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

type queries struct {
	q querier
}

// mapErr translates driver errors into store sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", store.ErrDuplicate, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: %s", store.ErrInUse, pqErr.Constraint)
		}
	}
	return err
}

func expectOne(res sql.Result, err error) error {
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ============================================================================
// TRANSACTIONS
// ============================================================================

const transactionColumns = `id, date, item_name, type, quantity, unit, amount, note, extra_note, created_at, updated_at`

func scanTransaction(row interface{ Scan(...interface{}) error }) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.Date, &t.ItemName, &t.Type, &t.Quantity, &t.Unit,
		&t.Amount, &t.Note, &t.ExtraNote, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (q queries) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO transactions (date, item_name, type, quantity, unit, amount, note, extra_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, t.Date, t.ItemName, t.Type, t.Quantity, t.Unit, t.Amount, t.Note, t.ExtraNote).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return mapErr(err)
}

func (q queries) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE transactions
		SET date = $2, item_name = $3, type = $4, quantity = $5, unit = $6,
		    amount = $7, note = $8, extra_note = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, t.ID, t.Date, t.ItemName, t.Type, t.Quantity, t.Unit, t.Amount, t.Note, t.ExtraNote).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	return mapErr(err)
}

func (q queries) DeleteTransaction(ctx context.Context, id int64) error {
	return expectOne(q.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id))
}

func (q queries) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	return t, mapErr(err)
}

func (q queries) ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Year != 0 {
		query += ` AND EXTRACT(YEAR FROM date) = ` + arg(f.Year)
	}
	if f.Month != 0 {
		query += ` AND EXTRACT(MONTH FROM date) = ` + arg(f.Month)
	}
	if !f.From.IsZero() {
		query += ` AND date >= ` + arg(f.From)
	}
	if !f.To.IsZero() {
		query += ` AND date < ` + arg(f.To)
	}
	if len(f.Types) > 0 {
		query += ` AND type = ANY(` + arg(pq.Array(f.Types)) + `)`
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (q queries) TransactionYears(ctx context.Context) ([]int, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year
		FROM transactions
		ORDER BY year
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (q queries) RenameTransactionType(ctx context.Context, from, to string) (int64, error) {
	res, err := q.q.ExecContext(ctx, `
		UPDATE transactions SET type = $2, updated_at = NOW() WHERE type = $1
	`, from, to)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ============================================================================
// PAYABLE
// ============================================================================

func (q queries) LockPayable(ctx context.Context) (models.PayableState, error) {
	var p models.PayableState
	if _, err := q.q.ExecContext(ctx, `
		INSERT INTO payable_state (id, total_owed) VALUES (1, 0)
		ON CONFLICT (id) DO NOTHING
	`); err != nil {
		return p, err
	}
	err := q.q.QueryRowContext(ctx, `
		SELECT total_owed, updated_at FROM payable_state WHERE id = 1 FOR UPDATE
	`).Scan(&p.TotalOwed, &p.UpdatedAt)
	return p, mapErr(err)
}

func (q queries) GetPayable(ctx context.Context) (models.PayableState, error) {
	p := models.PayableState{TotalOwed: decimal.Zero}
	err := q.q.QueryRowContext(ctx, `
		SELECT total_owed, updated_at FROM payable_state WHERE id = 1
	`).Scan(&p.TotalOwed, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	return p, mapErr(err)
}

func (q queries) SavePayable(ctx context.Context, total decimal.Decimal) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO payable_state (id, total_owed, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET total_owed = EXCLUDED.total_owed, updated_at = NOW()
	`, total)
	return err
}

// ============================================================================
// ASSETS
// ============================================================================

func (q queries) InsertAsset(ctx context.Context, a *models.Asset) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO assets (name, manufacturer, acquired_on, cost, life_years, salvage)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, a.Name, a.Manufacturer, a.AcquiredOn, a.Cost, a.LifeYears, a.Salvage).Scan(&a.ID, &a.CreatedAt)
	return mapErr(err)
}

func (q queries) UpdateAsset(ctx context.Context, a *models.Asset) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE assets
		SET name = $2, manufacturer = $3, acquired_on = $4, cost = $5, life_years = $6, salvage = $7
		WHERE id = $1
		RETURNING created_at
	`, a.ID, a.Name, a.Manufacturer, a.AcquiredOn, a.Cost, a.LifeYears, a.Salvage).Scan(&a.CreatedAt)
	return mapErr(err)
}

func (q queries) DeleteAsset(ctx context.Context, id int64) error {
	return expectOne(q.q.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id))
}

const assetColumns = `id, name, manufacturer, acquired_on, cost, life_years, salvage, created_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Name, &a.Manufacturer, &a.AcquiredOn, &a.Cost, &a.LifeYears, &a.Salvage, &a.CreatedAt)
	return a, err
}

func (q queries) GetAsset(ctx context.Context, id int64) (models.Asset, error) {
	a, err := scanAsset(q.q.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	return a, mapErr(err)
}

func (q queries) ListAssets(ctx context.Context) ([]models.Asset, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ============================================================================
// INVOICES
// ============================================================================

func (q queries) insertInvoiceLines(ctx context.Context, inv *models.Invoice) error {
	for i := range inv.Lines {
		l := &inv.Lines[i]
		l.InvoiceID = inv.ID
		err := q.q.QueryRowContext(ctx, `
			INSERT INTO invoice_lines (invoice_id, position, item, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, inv.ID, i, l.Item, l.Quantity, l.UnitPrice, l.Subtotal).Scan(&l.ID)
		if err != nil {
			return mapErr(err)
		}
	}
	return nil
}

func (q queries) InsertInvoice(ctx context.Context, inv *models.Invoice) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO invoices (number, customer, date, address, note, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, inv.Number, inv.Customer, inv.Date, inv.Address, inv.Note, inv.Total).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return q.insertInvoiceLines(ctx, inv)
}

func (q queries) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE invoices
		SET number = $2, customer = $3, date = $4, address = $5, note = $6, total = $7
		WHERE id = $1
		RETURNING created_at
	`, inv.ID, inv.Number, inv.Customer, inv.Date, inv.Address, inv.Note, inv.Total).Scan(&inv.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	if _, err := q.q.ExecContext(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, inv.ID); err != nil {
		return err
	}
	return q.insertInvoiceLines(ctx, inv)
}

func (q queries) DeleteInvoice(ctx context.Context, id int64) error {
	return expectOne(q.q.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id))
}

const invoiceColumns = `id, number, customer, date, address, note, total, created_at`

func scanInvoice(row interface{ Scan(...interface{}) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.Customer, &inv.Date, &inv.Address, &inv.Note, &inv.Total, &inv.CreatedAt)
	return inv, err
}

func (q queries) invoiceLines(ctx context.Context, ids []int64) (map[int64][]models.InvoiceLine, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, invoice_id, item, quantity, unit_price, subtotal
		FROM invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[int64][]models.InvoiceLine)
	for rows.Next() {
		var l models.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Item, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, err
		}
		lines[l.InvoiceID] = append(lines[l.InvoiceID], l)
	}
	return lines, rows.Err()
}

func (q queries) GetInvoice(ctx context.Context, id int64) (models.Invoice, error) {
	inv, err := scanInvoice(q.q.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return inv, mapErr(err)
	}
	lines, err := q.invoiceLines(ctx, []int64{id})
	if err != nil {
		return inv, err
	}
	inv.Lines = nonNil(lines[id])
	return inv, nil
}

func (q queries) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	out := []models.Invoice{}
	var ids []int64
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, inv)
		ids = append(ids, inv.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := q.invoiceLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Lines = nonNil(lines[out[i].ID])
	}
	return out, nil
}

func (q queries) CountInvoices(ctx context.Context) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n)
	return n, err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ============================================================================
// BUDGETS (RAB)
// ============================================================================

func (q queries) NextBudgetNumber(ctx context.Context) (int64, error) {
	var n int64
	err := q.q.QueryRowContext(ctx, `SELECT nextval('budget_code_seq')`).Scan(&n)
	return n, err
}

func (q queries) insertBudgetLines(ctx context.Context, b *models.Budget) error {
	for i := range b.Lines {
		l := &b.Lines[i]
		l.BudgetID = b.ID
		err := q.q.QueryRowContext(ctx, `
			INSERT INTO budget_lines (budget_id, position, category, item, spec, quantity, unit, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, b.ID, i, l.Category, l.Item, l.Spec, l.Quantity, l.Unit, l.UnitPrice, l.Total).Scan(&l.ID)
		if err != nil {
			return mapErr(err)
		}
	}
	return nil
}

func (q queries) InsertBudget(ctx context.Context, b *models.Budget) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO budgets (code, project_name, client_name, location, description, date, status, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, b.Code, b.ProjectName, b.ClientName, b.Location, b.Description, b.Date, b.Status, b.Total).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	return q.insertBudgetLines(ctx, b)
}

func (q queries) UpdateBudget(ctx context.Context, b *models.Budget) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE budgets
		SET project_name = $2, client_name = $3, location = $4, description = $5,
		    date = $6, status = $7, total = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING code, created_at, updated_at
	`, b.ID, b.ProjectName, b.ClientName, b.Location, b.Description, b.Date, b.Status, b.Total).
		Scan(&b.Code, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	if _, err := q.q.ExecContext(ctx, `DELETE FROM budget_lines WHERE budget_id = $1`, b.ID); err != nil {
		return err
	}
	return q.insertBudgetLines(ctx, b)
}

func (q queries) UpdateBudgetStatus(ctx context.Context, id int64, status models.BudgetStatus) error {
	return expectOne(q.q.ExecContext(ctx, `
		UPDATE budgets SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status))
}

func (q queries) DeleteBudget(ctx context.Context, id int64) error {
	return expectOne(q.q.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id))
}

const budgetColumns = `id, code, project_name, client_name, location, description, date, status, total, created_at, updated_at`

func scanBudget(row interface{ Scan(...interface{}) error }) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.Code, &b.ProjectName, &b.ClientName, &b.Location, &b.Description,
		&b.Date, &b.Status, &b.Total, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (q queries) budgetLines(ctx context.Context, ids []int64) (map[int64][]models.BudgetLine, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, budget_id, category, item, spec, quantity, unit, unit_price, total
		FROM budget_lines
		WHERE budget_id = ANY($1)
		ORDER BY budget_id, position
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[int64][]models.BudgetLine)
	for rows.Next() {
		var l models.BudgetLine
		if err := rows.Scan(&l.ID, &l.BudgetID, &l.Category, &l.Item, &l.Spec,
			&l.Quantity, &l.Unit, &l.UnitPrice, &l.Total); err != nil {
			return nil, err
		}
		lines[l.BudgetID] = append(lines[l.BudgetID], l)
	}
	return lines, rows.Err()
}

func (q queries) GetBudget(ctx context.Context, id int64) (models.Budget, error) {
	b, err := scanBudget(q.q.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id))
	if err != nil {
		return b, mapErr(err)
	}
	lines, err := q.budgetLines(ctx, []int64{id})
	if err != nil {
		return b, err
	}
	b.Lines = nonNil(lines[id])
	return b, nil
}

func (q queries) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	out := []models.Budget{}
	var ids []int64
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, b)
		ids = append(ids, b.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := q.budgetLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Lines = nonNil(lines[out[i].ID])
	}
	return out, nil
}

// ============================================================================
// EMPLOYEES
// ============================================================================

const employeeColumns = `id, nik, name, position, division, status, base_salary, birth_place, birth_date,
	address, phone, email, bank, account_number, npwp, education, marital_status,
	joined_on, note, photo, created_at, updated_at`

func scanEmployee(row interface{ Scan(...interface{}) error }) (models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.NIK, &e.Name, &e.Position, &e.Division, &e.Status, &e.BaseSalary,
		&e.BirthPlace, &e.BirthDate, &e.Address, &e.Phone, &e.Email, &e.Bank, &e.AccountNumber,
		&e.NPWP, &e.Education, &e.MaritalStatus, &e.JoinedOn, &e.Note, &e.Photo,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (q queries) InsertEmployee(ctx context.Context, e *models.Employee) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO employees (nik, name, position, division, status, base_salary, birth_place, birth_date,
			address, phone, email, bank, account_number, npwp, education, marital_status,
			joined_on, note, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`, e.NIK, e.Name, e.Position, e.Division, e.Status, e.BaseSalary, e.BirthPlace, e.BirthDate,
		e.Address, e.Phone, e.Email, e.Bank, e.AccountNumber, e.NPWP, e.Education, e.MaritalStatus,
		e.JoinedOn, e.Note, e.Photo).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapErr(err)
}

func (q queries) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE employees
		SET nik = $2, name = $3, position = $4, division = $5, status = $6, base_salary = $7,
		    birth_place = $8, birth_date = $9, address = $10, phone = $11, email = $12, bank = $13,
		    account_number = $14, npwp = $15, education = $16, marital_status = $17,
		    joined_on = $18, note = $19, photo = $20, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, e.ID, e.NIK, e.Name, e.Position, e.Division, e.Status, e.BaseSalary, e.BirthPlace, e.BirthDate,
		e.Address, e.Phone, e.Email, e.Bank, e.AccountNumber, e.NPWP, e.Education, e.MaritalStatus,
		e.JoinedOn, e.Note, e.Photo).Scan(&e.CreatedAt, &e.UpdatedAt)
	return mapErr(err)
}

func (q queries) DeleteEmployee(ctx context.Context, id int64) error {
	return expectOne(q.q.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id))
}

func (q queries) GetEmployee(ctx context.Context, id int64) (models.Employee, error) {
	e, err := scanEmployee(q.q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	return e, mapErr(err)
}

func (q queries) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (q queries) CountEmployees(ctx context.Context) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

// ============================================================================
// PAYROLL
// ============================================================================

const payrollColumns = `p.id, p.employee_id, e.name, p.period, p.base_salary, p.allowance, p.bonus,
	p.deduction, p.total, p.allowance_note, p.deduction_note, p.status, p.created_at, p.paid_at`

func scanPayroll(row interface{ Scan(...interface{}) error }) (models.PayrollSlip, error) {
	var p models.PayrollSlip
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Period, &p.BaseSalary, &p.Allowance,
		&p.Bonus, &p.Deduction, &p.Total, &p.AllowanceNote, &p.DeductionNote, &p.Status,
		&p.CreatedAt, &p.PaidAt)
	return p, err
}

func (q queries) InsertPayroll(ctx context.Context, p *models.PayrollSlip) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO payroll_slips (employee_id, period, base_salary, allowance, bonus, deduction, total,
			allowance_note, deduction_note, status, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`, p.EmployeeID, p.Period, p.BaseSalary, p.Allowance, p.Bonus, p.Deduction, p.Total,
		p.AllowanceNote, p.DeductionNote, p.Status, p.PaidAt).Scan(&p.ID, &p.CreatedAt)
	if err := mapErr(err); err != nil {
		if errors.Is(err, store.ErrInUse) {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

func (q queries) UpdatePayroll(ctx context.Context, p *models.PayrollSlip) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE payroll_slips
		SET base_salary = $2, allowance = $3, bonus = $4, deduction = $5, total = $6,
		    allowance_note = $7, deduction_note = $8, status = $9, paid_at = $10
		WHERE id = $1
		RETURNING created_at
	`, p.ID, p.BaseSalary, p.Allowance, p.Bonus, p.Deduction, p.Total,
		p.AllowanceNote, p.DeductionNote, p.Status, p.PaidAt).Scan(&p.CreatedAt)
	return mapErr(err)
}

func (q queries) DeletePayroll(ctx context.Context, id int64) error {
	return expectOne(q.q.ExecContext(ctx, `DELETE FROM payroll_slips WHERE id = $1`, id))
}

func (q queries) GetPayroll(ctx context.Context, id int64) (models.PayrollSlip, error) {
	p, err := scanPayroll(q.q.QueryRowContext(ctx, `
		SELECT `+payrollColumns+`
		FROM payroll_slips p JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`, id))
	return p, mapErr(err)
}

func (q queries) ListPayroll(ctx context.Context, f models.PayrollFilter) ([]models.PayrollSlip, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_slips p JOIN employees e ON e.id = p.employee_id WHERE 1=1`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.EmployeeID != 0 {
		query += ` AND p.employee_id = ` + arg(f.EmployeeID)
	}
	if f.Period != "" {
		query += ` AND p.period = ` + arg(f.Period)
	}
	if f.Year != 0 {
		query += ` AND p.period LIKE ` + arg(fmt.Sprintf("%04d-%%", f.Year))
	}
	if f.Status != "" {
		query += ` AND p.status = ` + arg(f.Status)
	}
	query += ` ORDER BY p.period DESC, p.id DESC`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PayrollSlip{}
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ store.Store = (*Store)(nil)
