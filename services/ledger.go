package services

import (
	"sort"
	"time"

	"github.com/daniarfurniture/finance-api/models"

	"github.com/shopspring/decimal"
)

// Classifier resolves a transaction type to its bucket.
type Classifier interface {
	Classify(transactionType string) models.Bucket
}

// Matches reports whether t passes every non-zero field of f.
func Matches(t models.Transaction, f models.TransactionFilter) bool {
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
	if len(f.Types) > 0 {
		for _, typ := range f.Types {
			if typ == t.Type {
				return true
			}
		}
		return false
	}
	return true
}

// Aggregate sums the filtered transactions by bucket. The result does not
// depend on input order.
func Aggregate(c Classifier, txs []models.Transaction, f models.TransactionFilter) models.PeriodSummary {
	s := emptySummary()
	for _, t := range txs {
		if !Matches(t, f) {
			continue
		}
		addToSummary(&s, c.Classify(t.Type), t.Amount)
		s.Count++
	}
	return finishSummary(s)
}

func emptySummary() models.PeriodSummary {
	z := decimal.Zero
	return models.PeriodSummary{
		Modal: z, Pemasukan: z, Funding: z, HPP: z, Operasional: z, LainLain: z, Pengeluaran: z,
		TotalIncome: z, TotalExpense: z, Balance: z,
	}
}

func addToSummary(s *models.PeriodSummary, b models.Bucket, amount decimal.Decimal) {
	switch b {
	case models.BucketModal:
		s.Modal = s.Modal.Add(amount)
	case models.BucketPemasukan:
		s.Pemasukan = s.Pemasukan.Add(amount)
	case models.BucketFunding:
		s.Funding = s.Funding.Add(amount)
	case models.BucketHPP:
		s.HPP = s.HPP.Add(amount)
	case models.BucketOperasional:
		s.Operasional = s.Operasional.Add(amount)
	case models.BucketLainLain:
		s.LainLain = s.LainLain.Add(amount)
	default:
		s.Pengeluaran = s.Pengeluaran.Add(amount)
	}
}

func finishSummary(s models.PeriodSummary) models.PeriodSummary {
	s.TotalIncome = s.Modal.Add(s.Pemasukan).Add(s.Funding)
	s.TotalExpense = s.HPP.Add(s.Operasional).Add(s.LainLain).Add(s.Pengeluaran)
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// MonthRange returns [first day of month, first day of next month) in UTC,
// the location transaction dates are stored in.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Trend returns n trailing calendar months ending with the month of now on
// the wall clock, oldest first.
func Trend(c Classifier, txs []models.Transaction, now time.Time, n int) []models.TrendPoint {
	if n <= 0 {
		return []models.TrendPoint{}
	}
	points := make([]models.TrendPoint, 0, n)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		m := current.AddDate(0, -i, 0)
		from, to := MonthRange(m.Year(), int(m.Month()))
		s := Aggregate(c, txs, models.TransactionFilter{From: from, To: to})
		points = append(points, models.TrendPoint{
			Label:   m.Format("Jan 2006"),
			Year:    m.Year(),
			Month:   int(m.Month()),
			Income:  s.TotalIncome,
			Expense: s.TotalExpense,
			Balance: s.Balance,
		})
	}
	return points
}

// SortRecent orders txs newest first, breaking date ties by descending id.
func SortRecent(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID > txs[j].ID
	})
}

// SortChronological orders txs oldest first, breaking ties by ascending id.
func SortChronological(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
}

// Recent returns the n newest transactions without modifying txs.
func Recent(txs []models.Transaction, n int) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	SortRecent(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Chart returns the six dashboard bars: every bucket except the default.
func Chart(s models.PeriodSummary) models.ChartSeries {
	series := models.ChartSeries{}
	for _, b := range models.Buckets {
		if b == models.BucketPengeluaran {
			continue
		}
		series.Labels = append(series.Labels, string(b))
		series.Data = append(series.Data, s.Bucket(b))
	}
	return series
}

// ByType sums amounts per transaction type for one bucket, skipping zero
// totals. Output is sorted by type.
func ByType(c Classifier, txs []models.Transaction, f models.TransactionFilter, buckets ...models.Bucket) []models.TypeAmount {
	want := make(map[models.Bucket]bool, len(buckets))
	for _, b := range buckets {
		want[b] = true
	}
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if !Matches(t, f) || !want[c.Classify(t.Type)] {
			continue
		}
		totals[t.Type] = totals[t.Type].Add(t.Amount)
	}
	out := make([]models.TypeAmount, 0, len(totals))
	for typ, amount := range totals {
		if amount.IsZero() {
			continue
		}
		out = append(out, models.TypeAmount{Type: typ, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
