package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store/memory"

	"github.com/shopspring/decimal"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(entity, action string, id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, entity+":"+action)
}

func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func fixedClock(t time.Time) Clock { return func() time.Time { return t } }

func newTransactionService(reverseOnDelete bool) (*TransactionService, *memory.Store, *recordingNotifier) {
	st := memory.New()
	n := &recordingNotifier{}
	svc := NewTransactionService(st, DefaultCatalog(), TransactionOptions{
		Clock:           fixedClock(date(2024, time.June, 15)),
		Notifier:        n,
		ReverseOnDelete: reverseOnDelete,
	})
	return svc, st, n
}

func input(d, typ, amount string) models.TransactionInput {
	return models.TransactionInput{Date: d, ItemName: "item", Type: typ, Amount: dec(amount)}
}

func mustAdd(t *testing.T, svc *TransactionService, in models.TransactionInput) models.Transaction {
	t.Helper()
	tr, err := svc.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add(%s %s): %v", in.Type, in.Amount, err)
	}
	return tr
}

func owed(t *testing.T, svc *TransactionService) decimal.Decimal {
	t.Helper()
	p, err := svc.Payable(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return p.TotalOwed
}

func TestAddValidates(t *testing.T) {
	svc, _, _ := newTransactionService(false)
	cases := map[string]models.TransactionInput{
		"bad date":        input("15/06/2024", "IKLAN", "1"),
		"missing date":    input("", "IKLAN", "1"),
		"missing type":    input("2024-06-01", " ", "1"),
		"negative amount": input("2024-06-01", "IKLAN", "-5"),
	}
	for name, in := range cases {
		_, err := svc.Add(context.Background(), in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: error = %v, want ValidationError", name, err)
		}
	}
}

func TestKasbonScenario(t *testing.T) {
	svc, _, n := newTransactionService(false)
	ctx := context.Background()

	mustAdd(t, svc, input("2024-06-01", models.TypeKasbon, "500000"))
	if got := owed(t, svc); !got.Equal(dec("500000")) {
		t.Fatalf("owed after grant = %s", got)
	}

	_, err := svc.Add(ctx, input("2024-06-02", models.TypeBayarKasbon, "600000"))
	var od *OverdrawError
	if !errors.As(err, &od) {
		t.Fatalf("over-repay error = %v", err)
	}
	list, err := svc.List(ctx, 6, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Transactions) != 1 {
		t.Errorf("rejected repayment was stored: %d transactions", len(list.Transactions))
	}
	if got := owed(t, svc); !got.Equal(dec("500000")) {
		t.Errorf("owed after rejected repay = %s", got)
	}

	mustAdd(t, svc, input("2024-06-03", models.TypeBayarKasbon, "500000"))
	if got := owed(t, svc); !got.IsZero() {
		t.Errorf("owed after repay = %s", got)
	}
	if events := n.recorded(); len(events) != 2 {
		t.Errorf("notifications = %v, want 2", events)
	}
}

func TestEditRebalancesPayable(t *testing.T) {
	svc, _, _ := newTransactionService(false)
	ctx := context.Background()

	grant := mustAdd(t, svc, input("2024-06-01", models.TypeKasbon, "200000"))

	_, err := svc.Edit(ctx, grant.ID, input("2024-06-01", models.TypeBayarKasbon, "100000"))
	var od *OverdrawError
	if !errors.As(err, &od) {
		t.Fatalf("edit grant->repay error = %v", err)
	}
	got, err := svc.Get(ctx, grant.ID)
	if err != nil || got.Type != models.TypeKasbon {
		t.Errorf("rejected edit changed the row: %+v, %v", got, err)
	}
	if b := owed(t, svc); !b.Equal(dec("200000")) {
		t.Errorf("owed after rejected edit = %s", b)
	}

	if _, err := svc.Edit(ctx, grant.ID, input("2024-06-01", models.TypeKasbon, "350000")); err != nil {
		t.Fatal(err)
	}
	if b := owed(t, svc); !b.Equal(dec("350000")) {
		t.Errorf("owed after resize = %s", b)
	}

	if _, err := svc.Edit(ctx, grant.ID, input("2024-06-01", "IKLAN", "350000")); err != nil {
		t.Fatal(err)
	}
	if b := owed(t, svc); !b.IsZero() {
		t.Errorf("owed after retype = %s", b)
	}
}

func TestEditMissing(t *testing.T) {
	svc, _, _ := newTransactionService(false)
	_, err := svc.Edit(context.Background(), 42, input("2024-06-01", "IKLAN", "1"))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
	err = svc.Delete(context.Background(), 42)
	if !errors.As(err, &nf) {
		t.Errorf("delete error = %v, want NotFoundError", err)
	}
}

func TestDeleteKeepsPayableByDefault(t *testing.T) {
	svc, _, _ := newTransactionService(false)
	grant := mustAdd(t, svc, input("2024-06-01", models.TypeKasbon, "200000"))

	if err := svc.Delete(context.Background(), grant.ID); err != nil {
		t.Fatal(err)
	}
	if b := owed(t, svc); !b.Equal(dec("200000")) {
		t.Errorf("owed after delete = %s, want 200000", b)
	}
	if svc.ReverseOnDelete() {
		t.Error("ReverseOnDelete() = true")
	}
}

func TestDeleteReversesPayable(t *testing.T) {
	svc, _, _ := newTransactionService(true)
	ctx := context.Background()
	grant := mustAdd(t, svc, input("2024-06-01", models.TypeKasbon, "200000"))
	repay := mustAdd(t, svc, input("2024-06-02", models.TypeBayarKasbon, "150000"))

	err := svc.Delete(ctx, grant.ID)
	var od *OverdrawError
	if !errors.As(err, &od) {
		t.Fatalf("deleting a repaid grant: %v", err)
	}
	if _, err := svc.Get(ctx, grant.ID); err != nil {
		t.Errorf("rejected delete removed the row: %v", err)
	}

	if err := svc.Delete(ctx, repay.ID); err != nil {
		t.Fatal(err)
	}
	if b := owed(t, svc); !b.Equal(dec("200000")) {
		t.Errorf("owed after deleting repay = %s", b)
	}
	if err := svc.Delete(ctx, grant.ID); err != nil {
		t.Fatal(err)
	}
	if b := owed(t, svc); !b.IsZero() {
		t.Errorf("owed after deleting grant = %s", b)
	}
}

func TestListAndSummary(t *testing.T) {
	svc, _, _ := newTransactionService(false)
	ctx := context.Background()
	mustAdd(t, svc, input("2024-06-10", "PENJUALAN TUNAI", "1000000"))
	mustAdd(t, svc, input("2024-06-02", "IKLAN", "250000"))
	mustAdd(t, svc, input("2019-01-01", "PENJUALAN TUNAI", "5"))

	list, err := svc.List(ctx, 6, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Transactions) != 2 || list.Transactions[0].Type != "IKLAN" {
		t.Fatalf("transactions = %+v", list.Transactions)
	}
	if !list.Summary.Balance.Equal(dec("750000")) {
		t.Errorf("balance = %s, want 750000", list.Summary.Balance)
	}
	want := []int{2019, 2022, 2023, 2024, 2025, 2026}
	if len(list.Years) != len(want) {
		t.Fatalf("years = %v, want %v", list.Years, want)
	}
	for i := range want {
		if list.Years[i] != want[i] {
			t.Errorf("years = %v, want %v", list.Years, want)
			break
		}
	}

	sum, err := svc.Summary(ctx, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 3 || !sum.Pemasukan.Equal(dec("1000005")) {
		t.Errorf("all-time summary = %+v", sum)
	}

	var ve *ValidationError
	if _, err := svc.List(ctx, 13, 2024); !errors.As(err, &ve) {
		t.Errorf("month 13 error = %v", err)
	}
}

func TestConcurrentRepaymentsAreSerialised(t *testing.T) {
	svc, st, n := newTransactionService(false)
	ctx := context.Background()
	mustAdd(t, svc, input("2024-06-01", models.TypeKasbon, "1000"))

	const workers = 50
	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
		rejected atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, input("2024-06-02", models.TypeBayarKasbon, "100"))
			var od *OverdrawError
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.As(err, &od):
				rejected.Add(1)
			default:
				t.Errorf("Add: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted.Load() != 10 || rejected.Load() != workers-10 {
		t.Errorf("accepted %d rejected %d, want 10 and %d", accepted.Load(), rejected.Load(), workers-10)
	}
	if b := owed(t, svc); !b.IsZero() {
		t.Errorf("owed = %s, want 0", b)
	}
	stored, err := st.ListTransactions(ctx, models.TransactionFilter{Types: []string{models.TypeBayarKasbon}})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 10 {
		t.Errorf("stored repayments = %d, want 10", len(stored))
	}
	if events := n.recorded(); len(events) != 11 {
		t.Errorf("notifications = %d, want 11", len(events))
	}
}

func TestMonthWithoutYearMeansCurrentYear(t *testing.T) {
	svc, _, _ := newTransactionService(false)
	ctx := context.Background()
	mustAdd(t, svc, input("2024-06-10", "PENJUALAN TUNAI", "1000000"))
	mustAdd(t, svc, input("2023-06-05", "PENJUALAN TUNAI", "5"))

	list, err := svc.List(ctx, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	if list.Year != 2024 || len(list.Transactions) != 1 {
		t.Errorf("June without year = year %d, %d transactions", list.Year, len(list.Transactions))
	}
	sum, err := svc.Summary(ctx, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Pemasukan.Equal(dec("1000000")) {
		t.Errorf("June without year pemasukan = %s, want 1000000", sum.Pemasukan)
	}
	past, err := svc.Summary(ctx, 6, 2023)
	if err != nil || !past.Pemasukan.Equal(dec("5")) {
		t.Errorf("June 2023 = %s, %v", past.Pemasukan, err)
	}
}
