// Package store defines the persistence boundary of the finance API.
// Backends register themselves by name and are selected with Open.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/daniarfurniture/finance-api/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
	ErrInUse     = errors.New("store: row is referenced")
)

// Queries is every read and write a service may issue. A Queries obtained
// inside WithTx sees and commits its writes atomically.
type Queries interface {
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransaction(ctx context.Context, id int64) (models.Transaction, error)
	// ListTransactions returns matches ordered by date then id, ascending.
	ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error)
	TransactionYears(ctx context.Context) ([]int, error)
	RenameTransactionType(ctx context.Context, from, to string) (int64, error)

	// LockPayable returns the kasbon balance, creating it at zero when
	// absent. Inside WithTx the row stays locked until commit.
	LockPayable(ctx context.Context) (models.PayableState, error)
	// GetPayable reads the balance without locking or creating the row;
	// an absent row reads as zero.
	GetPayable(ctx context.Context) (models.PayableState, error)
	SavePayable(ctx context.Context, total decimal.Decimal) error

	InsertAsset(ctx context.Context, a *models.Asset) error
	UpdateAsset(ctx context.Context, a *models.Asset) error
	DeleteAsset(ctx context.Context, id int64) error
	GetAsset(ctx context.Context, id int64) (models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)

	InsertInvoice(ctx context.Context, inv *models.Invoice) error
	// UpdateInvoice replaces the header and every line.
	UpdateInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error
	GetInvoice(ctx context.Context, id int64) (models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	CountInvoices(ctx context.Context) (int, error)

	// NextBudgetNumber hands out the sequence used in RAB codes.
	NextBudgetNumber(ctx context.Context) (int64, error)
	InsertBudget(ctx context.Context, b *models.Budget) error
	UpdateBudget(ctx context.Context, b *models.Budget) error
	UpdateBudgetStatus(ctx context.Context, id int64, status models.BudgetStatus) error
	DeleteBudget(ctx context.Context, id int64) error
	GetBudget(ctx context.Context, id int64) (models.Budget, error)
	ListBudgets(ctx context.Context) ([]models.Budget, error)

	InsertEmployee(ctx context.Context, e *models.Employee) error
	UpdateEmployee(ctx context.Context, e *models.Employee) error
	// DeleteEmployee fails with ErrInUse while payroll slips reference it.
	DeleteEmployee(ctx context.Context, id int64) error
	GetEmployee(ctx context.Context, id int64) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CountEmployees(ctx context.Context) (int, error)

	InsertPayroll(ctx context.Context, p *models.PayrollSlip) error
	UpdatePayroll(ctx context.Context, p *models.PayrollSlip) error
	DeletePayroll(ctx context.Context, id int64) error
	GetPayroll(ctx context.Context, id int64) (models.PayrollSlip, error)
	ListPayroll(ctx context.Context, f models.PayrollFilter) ([]models.PayrollSlip, error)
}

// Store is an opened backend.
type Store interface {
	Queries
	// WithTx runs fn in one atomic unit. Any error returned by fn rolls
	// back every write it made.
	WithTx(ctx context.Context, fn func(q Queries) error) error
	Ping(ctx context.Context) error
	Close() error
}

// Driver opens a Store from a data source name.
type Driver interface {
	Open(ctx context.Context, dsn string) (Store, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a backend available by name. It panics on duplicates.
func Register(name string, d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if d == nil {
		panic("store: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("store: Register called twice for driver " + name)
	}
	drivers[name] = d
}

// Drivers returns the sorted names of the registered backends.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the named backend.
func Open(ctx context.Context, name, dsn string) (Store, error) {
	driversMu.RLock()
	d, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store: unknown driver %q (available: %v)", name, Drivers())
	}
	return d.Open(ctx, dsn)
}
