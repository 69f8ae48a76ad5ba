package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"
)

type AssetService struct {
	store    store.Store
	clock    Clock
	notifier Notifier
}

func NewAssetService(st store.Store, clock Clock, notifier Notifier) *AssetService {
	if clock == nil {
		clock = SystemClock
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &AssetService{store: st, clock: clock, notifier: notifier}
}

// buildAsset accepts records without cost or life; those are stored but
// report as not computable.
func buildAsset(in models.AssetInput) (models.Asset, error) {
	acquired, err := parseDate("acquired_on", strings.TrimSpace(in.AcquiredOn))
	if err != nil {
		return models.Asset{}, err
	}
	a := models.Asset{
		Name:         strings.TrimSpace(in.Name),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		AcquiredOn:   acquired,
		Cost:         in.Cost,
		LifeYears:    in.LifeYears,
		Salvage:      in.Salvage,
	}
	switch {
	case a.Name == "":
		return a, invalid("name", "is required")
	case a.Cost.IsNegative():
		return a, invalid("cost", "must not be negative")
	case a.LifeYears < 0:
		return a, invalid("life_years", "must not be negative")
	case a.Salvage.IsNegative():
		return a, invalid("salvage", "must not be negative")
	case a.Cost.IsPositive() && !a.Salvage.LessThan(a.Cost):
		return a, invalid("salvage", "must be less than cost")
	}
	return a, nil
}

func (s *AssetService) Create(ctx context.Context, in models.AssetInput) (models.Asset, error) {
	a, err := buildAsset(in)
	if err != nil {
		return a, err
	}
	if err := s.store.InsertAsset(ctx, &a); err != nil {
		return models.Asset{}, err
	}
	utils.SafeInfo("🏭 Asset %d created: %s", a.ID, a.Name)
	s.notifier.Notify("asset", "created", a.ID)
	return a, nil
}

func (s *AssetService) Update(ctx context.Context, id int64, in models.AssetInput) (models.Asset, error) {
	a, err := buildAsset(in)
	if err != nil {
		return a, err
	}
	a.ID = id
	if err := s.store.UpdateAsset(ctx, &a); err != nil {
		return models.Asset{}, notFound(err, "asset", id)
	}
	s.notifier.Notify("asset", "updated", id)
	return a, nil
}

func (s *AssetService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteAsset(ctx, id); err != nil {
		return notFound(err, "asset", id)
	}
	s.notifier.Notify("asset", "deleted", id)
	return nil
}

func (s *AssetService) Get(ctx context.Context, id int64) (models.Asset, error) {
	a, err := s.store.GetAsset(ctx, id)
	return a, notFound(err, "asset", id)
}

// Depreciation returns the depreciation view of one asset as of asOf (now
// when zero). An incomplete asset yields a zero view with Computable false.
func (s *AssetService) Depreciation(ctx context.Context, id int64, asOf time.Time) (models.Depreciation, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return models.Depreciation{}, err
	}
	if asOf.IsZero() {
		asOf = s.clock()
	}
	view, err := Depreciate(a, asOf)
	if err != nil && !errors.Is(err, ErrNotComputable) {
		return view, err
	}
	return view, nil
}

// List returns every asset with its depreciation. Incomplete assets are
// included with Computable false.
func (s *AssetService) List(ctx context.Context) ([]models.Depreciation, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	out := make([]models.Depreciation, 0, len(assets))
	for _, a := range assets {
		view, err := Depreciate(a, now)
		if err != nil {
			utils.SafeDebug("asset %d skipped: %v", a.ID, err)
		}
		out = append(out, view)
	}
	return out, nil
}
