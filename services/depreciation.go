package services

import (
	"iter"
	"time"

	"github.com/daniarfurniture/finance-api/models"

	"github.com/shopspring/decimal"
)

// Straight-line depreciation over whole calendar years. Amounts are rounded
// to two decimal places.

func computable(a models.Asset) bool {
	return a.LifeYears > 0 && a.Cost.IsPositive() && !a.Salvage.IsNegative() && a.Salvage.LessThanOrEqual(a.Cost)
}

func depreciableBase(a models.Asset) decimal.Decimal {
	return a.Cost.Sub(a.Salvage)
}

// accumulatedAt is the depreciation charged after the given number of years.
func accumulatedAt(a models.Asset, years int) decimal.Decimal {
	if years >= a.LifeYears {
		return depreciableBase(a)
	}
	return depreciableBase(a).
		Mul(decimal.NewFromInt(int64(years))).
		Div(decimal.NewFromInt(int64(a.LifeYears))).
		Round(2)
}

// AnnualDepreciation returns (cost - salvage) / life.
func AnnualDepreciation(a models.Asset) (decimal.Decimal, error) {
	if !computable(a) {
		return decimal.Zero, ErrNotComputable
	}
	return depreciableBase(a).Div(decimal.NewFromInt(int64(a.LifeYears))).Round(2), nil
}

// ElapsedYears counts calendar years between acquisition and asOf, clamped to
// [0, life].
func ElapsedYears(a models.Asset, asOf time.Time) int {
	n := asOf.Year() - a.AcquiredOn.Year()
	if n < 0 {
		return 0
	}
	if n > a.LifeYears {
		return a.LifeYears
	}
	return n
}

// BookValue returns cost less accumulated depreciation at asOf. It never
// drops below salvage.
func BookValue(a models.Asset, asOf time.Time) (decimal.Decimal, error) {
	if !computable(a) {
		return decimal.Zero, ErrNotComputable
	}
	return a.Cost.Sub(accumulatedAt(a, ElapsedYears(a, asOf))), nil
}

// Schedule yields one entry per year of useful life. Iteration is lazy and
// may be restarted; entry depreciation sums to exactly cost - salvage.
// A non-computable asset yields nothing.
func Schedule(a models.Asset) iter.Seq[models.ScheduleEntry] {
	return func(yield func(models.ScheduleEntry) bool) {
		if !computable(a) {
			return
		}
		prev := decimal.Zero
		for i := 1; i <= a.LifeYears; i++ {
			acc := accumulatedAt(a, i)
			entry := models.ScheduleEntry{
				Year:         a.AcquiredOn.Year() + i,
				Depreciation: acc.Sub(prev),
				Accumulated:  acc,
				BookValue:    a.Cost.Sub(acc),
			}
			if !yield(entry) {
				return
			}
			prev = acc
		}
	}
}

// Depreciate assembles the full depreciation view of an asset.
func Depreciate(a models.Asset, asOf time.Time) (models.Depreciation, error) {
	view := models.Depreciation{
		Asset: a, AsOf: asOf, Annual: decimal.Zero, BookValue: decimal.Zero,
		Schedule: []models.ScheduleEntry{},
	}

	annual, err := AnnualDepreciation(a)
	if err != nil {
		return view, err
	}
	bv, err := BookValue(a, asOf)
	if err != nil {
		return view, err
	}
	for entry := range Schedule(a) {
		view.Schedule = append(view.Schedule, entry)
	}
	view.Computable = true
	view.Annual = annual
	view.BookValue = bv
	return view, nil
}
