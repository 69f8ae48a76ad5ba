package services

import (
	"testing"
	"time"

	"github.com/daniarfurniture/finance-api/models"

	"github.com/shopspring/decimal"
)

func tx(id int64, d time.Time, typ, amount string) models.Transaction {
	return models.Transaction{ID: id, Date: d, ItemName: typ, Type: typ, Amount: dec(amount)}
}

func sampleLedger() []models.Transaction {
	return []models.Transaction{
		tx(1, date(2024, time.January, 2), "SETORAN MODAL AWAL", "50000000"),
		tx(2, date(2024, time.January, 5), "PENJUALAN TUNAI", "7500000"),
		tx(3, date(2024, time.January, 9), "PERSEDIAAN", "3000000"),
		tx(4, date(2024, time.February, 1), "BIAYA LISTRIK", "450000"),
		tx(5, date(2024, time.February, 3), "PINJAMAN BANK", "10000000"),
		tx(6, date(2024, time.February, 8), "KASBON", "500000"),
		tx(7, date(2024, time.March, 1), "BELI PAKU", "25000"),
		tx(8, date(2023, time.December, 30), "PENJUALAN TUNAI", "1000000"),
	}
}

func TestAggregateBuckets(t *testing.T) {
	s := Aggregate(DefaultCatalog(), sampleLedger(), models.TransactionFilter{Year: 2024})

	checks := map[string][2]decimal.Decimal{
		"modal":       {s.Modal, dec("50000000")},
		"pemasukan":   {s.Pemasukan, dec("7500000")},
		"funding":     {s.Funding, dec("10000000")},
		"hpp":         {s.HPP, dec("3000000")},
		"operasional": {s.Operasional, dec("450000")},
		"lain_lain":   {s.LainLain, dec("500000")},
		"pengeluaran": {s.Pengeluaran, dec("25000")},
		"income":      {s.TotalIncome, dec("67500000")},
		"expense":     {s.TotalExpense, dec("3975000")},
		"balance":     {s.Balance, dec("63525000")},
	}
	for name, c := range checks {
		if !c[0].Equal(c[1]) {
			t.Errorf("%s = %s, want %s", name, c[0], c[1])
		}
	}
	if s.Count != 7 {
		t.Errorf("Count = %d, want 7", s.Count)
	}
}

func TestAggregateSingleSale(t *testing.T) {
	txs := []models.Transaction{tx(1, date(2024, time.May, 3), "PENJUALAN TUNAI", "1000000")}
	s := Aggregate(DefaultCatalog(), txs, models.TransactionFilter{})
	if !s.Pemasukan.Equal(dec("1000000")) || !s.TotalIncome.Equal(dec("1000000")) || !s.Balance.Equal(dec("1000000")) {
		t.Errorf("summary = %+v", s)
	}
	if !s.TotalExpense.IsZero() {
		t.Errorf("TotalExpense = %s, want 0", s.TotalExpense)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	txs := sampleLedger()
	forward := Aggregate(DefaultCatalog(), txs, models.TransactionFilter{})

	reversed := make([]models.Transaction, len(txs))
	for i, tr := range txs {
		reversed[len(txs)-1-i] = tr
	}
	backward := Aggregate(DefaultCatalog(), reversed, models.TransactionFilter{})

	if !forward.Balance.Equal(backward.Balance) || !forward.TotalIncome.Equal(backward.TotalIncome) || forward.Count != backward.Count {
		t.Errorf("forward %+v backward %+v", forward, backward)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(DefaultCatalog(), nil, models.TransactionFilter{Month: 4, Year: 2024})
	if s.Count != 0 || !s.Balance.IsZero() || !s.Modal.IsZero() {
		t.Errorf("summary = %+v", s)
	}
}

func TestMatches(t *testing.T) {
	sale := tx(1, date(2024, time.February, 29), "PENJUALAN TUNAI", "1")
	from, to := MonthRange(2024, 2)
	cases := []struct {
		name string
		f    models.TransactionFilter
		want bool
	}{
		{"empty", models.TransactionFilter{}, true},
		{"month", models.TransactionFilter{Month: 2}, true},
		{"other month", models.TransactionFilter{Month: 3}, false},
		{"year", models.TransactionFilter{Year: 2024}, true},
		{"other year", models.TransactionFilter{Year: 2023}, false},
		{"range", models.TransactionFilter{From: from, To: to}, true},
		{"range end exclusive", models.TransactionFilter{To: sale.Date}, false},
		{"range start inclusive", models.TransactionFilter{From: sale.Date}, true},
		{"type", models.TransactionFilter{Types: []string{"IKLAN", "PENJUALAN TUNAI"}}, true},
		{"other type", models.TransactionFilter{Types: []string{"IKLAN"}}, false},
	}
	for _, tc := range cases {
		if got := Matches(sale, tc.f); got != tc.want {
			t.Errorf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTrend(t *testing.T) {
	points := Trend(DefaultCatalog(), sampleLedger(), date(2024, time.March, 15), 6)
	if len(points) != 6 {
		t.Fatalf("len = %d, want 6", len(points))
	}
	if points[0].Label != "Oct 2023" || points[5].Label != "Mar 2024" {
		t.Errorf("labels %q .. %q", points[0].Label, points[5].Label)
	}
	dec23 := points[2]
	if dec23.Month != 12 || dec23.Year != 2023 || !dec23.Income.Equal(dec("1000000")) {
		t.Errorf("December point = %+v", dec23)
	}
	feb := points[4]
	if !feb.Income.Equal(dec("10000000")) || !feb.Expense.Equal(dec("950000")) {
		t.Errorf("February point = %+v", feb)
	}
	if len(Trend(DefaultCatalog(), nil, time.Now(), 0)) != 0 {
		t.Error("Trend with n=0 returned points")
	}
}

func TestRecent(t *testing.T) {
	txs := sampleLedger()
	txs = append(txs, tx(9, date(2024, time.March, 1), "IKLAN", "1"))
	got := Recent(txs, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != 9 || got[1].ID != 7 || got[2].ID != 6 {
		t.Errorf("ids = %d %d %d, want 9 7 6", got[0].ID, got[1].ID, got[2].ID)
	}
	if txs[0].ID != 1 {
		t.Error("Recent reordered its input")
	}
}

func TestChart(t *testing.T) {
	s := Aggregate(DefaultCatalog(), sampleLedger(), models.TransactionFilter{})
	c := Chart(s)
	want := []string{"MODAL", "PEMASUKAN", "FUNDING", "HPP", "OPERASIONAL", "LAIN_LAIN"}
	if len(c.Labels) != len(want) || len(c.Data) != len(want) {
		t.Fatalf("chart = %+v", c)
	}
	for i, l := range want {
		if c.Labels[i] != l {
			t.Errorf("label %d = %s, want %s", i, c.Labels[i], l)
		}
	}
	if !c.Data[1].Equal(dec("8500000")) {
		t.Errorf("PEMASUKAN bar = %s, want 8500000", c.Data[1])
	}
}

func TestByType(t *testing.T) {
	txs := append(sampleLedger(),
		tx(10, date(2024, time.January, 20), "PENJUALAN TUNAI", "500000"),
		tx(11, date(2024, time.January, 21), "PENERIMAAN PIUTANG", "0"),
		tx(12, date(2024, time.January, 22), "PENDAPATAN BUNGA", "1500"),
	)
	got := ByType(DefaultCatalog(), txs, models.TransactionFilter{Year: 2024}, models.BucketPemasukan)
	if len(got) != 2 {
		t.Fatalf("ByType = %+v", got)
	}
	if got[0].Type != "PENDAPATAN BUNGA" || got[1].Type != "PENJUALAN TUNAI" {
		t.Errorf("order = %s, %s", got[0].Type, got[1].Type)
	}
	if !got[1].Amount.Equal(dec("8000000")) {
		t.Errorf("PENJUALAN TUNAI = %s, want 8000000", got[1].Amount)
	}
}
