package services

import (
	"errors"
	"testing"
	"time"

	"github.com/daniarfurniture/finance-api/models"

	"github.com/shopspring/decimal"
)

func TestApplyPayableGrantAndRepay(t *testing.T) {
	bal, err := ApplyPayable(decimal.Zero, models.TypeKasbon, dec("500000"))
	if err != nil || !bal.Equal(dec("500000")) {
		t.Fatalf("grant: %s, %v", bal, err)
	}

	after, err := ApplyPayable(bal, models.TypeBayarKasbon, dec("600000"))
	var od *OverdrawError
	if !errors.As(err, &od) {
		t.Fatalf("over-repay error = %v, want OverdrawError", err)
	}
	if !od.Balance.Equal(dec("500000")) || !od.Amount.Equal(dec("600000")) {
		t.Errorf("OverdrawError = %+v", od)
	}
	if !after.Equal(bal) {
		t.Errorf("rejected repay changed balance to %s", after)
	}

	bal, err = ApplyPayable(bal, models.TypeBayarKasbon, dec("500000"))
	if err != nil || !bal.IsZero() {
		t.Errorf("exact repay: %s, %v", bal, err)
	}
}

func TestApplyPayableOtherTypes(t *testing.T) {
	bal, err := ApplyPayable(dec("100"), "PENJUALAN TUNAI", dec("999"))
	if err != nil || !bal.Equal(dec("100")) {
		t.Errorf("unrelated type: %s, %v", bal, err)
	}
	if TouchesPayable("PENJUALAN TUNAI") || !TouchesPayable("KASBON") || !TouchesPayable("BAYAR KASBON") {
		t.Error("TouchesPayable misclassified a type")
	}
}

func TestReversePayable(t *testing.T) {
	if got := ReversePayable(dec("100"), models.TypeKasbon, dec("300")); !got.Equal(dec("-200")) {
		t.Errorf("reverse grant = %s, want -200", got)
	}
	if got := ReversePayable(dec("100"), models.TypeBayarKasbon, dec("50")); !got.Equal(dec("150")) {
		t.Errorf("reverse repay = %s, want 150", got)
	}
}

func TestRebalancePayable(t *testing.T) {
	grant := models.Transaction{Type: models.TypeKasbon, Amount: dec("200000")}

	// A grant turned into a repayment leaves nothing to repay against.
	repay := models.Transaction{Type: models.TypeBayarKasbon, Amount: dec("100000")}
	got, err := RebalancePayable(dec("200000"), grant, repay)
	var od *OverdrawError
	if !errors.As(err, &od) || !got.Equal(dec("200000")) {
		t.Errorf("grant->repay: %s, %v", got, err)
	}

	bigger := models.Transaction{Type: models.TypeKasbon, Amount: dec("350000")}
	got, err = RebalancePayable(dec("200000"), grant, bigger)
	if err != nil || !got.Equal(dec("350000")) {
		t.Errorf("grant resize: %s, %v", got, err)
	}

	// Shrinking a grant below what was already repaid.
	smaller := models.Transaction{Type: models.TypeKasbon, Amount: dec("50000")}
	got, err = RebalancePayable(dec("100000"), grant, smaller)
	if !errors.As(err, &od) || !got.Equal(dec("100000")) {
		t.Fatalf("grant shrink below repaid: %s, %v", got, err)
	}
	if od.Change != "edit" || !od.Result.Equal(dec("-50000")) {
		t.Errorf("shrink error = %+v", od)
	}
	if want := "edit would leave kasbon balance at -50000.00 (balance owed 100000.00)"; err.Error() != want {
		t.Errorf("shrink message = %q, want %q", err.Error(), want)
	}

	sale := models.Transaction{Type: "PENJUALAN TUNAI", Amount: dec("1")}
	got, err = RebalancePayable(dec("200000"), sale, sale)
	if err != nil || !got.Equal(dec("200000")) {
		t.Errorf("unrelated edit: %s, %v", got, err)
	}
}

func TestRemovePayable(t *testing.T) {
	grant := models.Transaction{Type: models.TypeKasbon, Amount: dec("300")}
	_, err := RemovePayable(dec("100"), grant)
	var od *OverdrawError
	if !errors.As(err, &od) || od.Change != "delete" || !od.Result.Equal(dec("-200")) {
		t.Errorf("removing a repaid grant: %v", err)
	}
	got, err := RemovePayable(dec("300"), grant)
	if err != nil || !got.IsZero() {
		t.Errorf("remove grant: %s, %v", got, err)
	}
	repay := models.Transaction{Type: models.TypeBayarKasbon, Amount: dec("40")}
	got, err = RemovePayable(dec("10"), repay)
	if err != nil || !got.Equal(dec("50")) {
		t.Errorf("remove repay: %s, %v", got, err)
	}
}

func TestReplay(t *testing.T) {
	txs := []models.Transaction{
		tx(3, date(2024, time.March, 1), models.TypeBayarKasbon, "500000"),
		tx(1, date(2024, time.January, 1), models.TypeKasbon, "500000"),
		tx(2, date(2024, time.February, 1), models.TypeBayarKasbon, "600000"),
		tx(4, date(2024, time.March, 2), "PENJUALAN TUNAI", "9"),
		tx(5, date(2024, time.April, 1), models.TypeKasbon, "75000"),
	}
	r := Replay(txs)
	if !r.Balance.Equal(dec("75000")) {
		t.Errorf("Balance = %s, want 75000", r.Balance)
	}
	if r.Grants != 2 || r.Repays != 1 || r.Rejected != 1 {
		t.Errorf("replay counts = %+v", r)
	}
	if txs[0].ID != 3 {
		t.Error("Replay reordered its input")
	}
}
