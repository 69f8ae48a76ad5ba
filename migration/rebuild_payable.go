// migration/rebuild_payable.go
// Compares the stored kasbon balance with the balance derived from the
// KASBON / BAYAR KASBON history and optionally overwrites it.
//
// USAGE:
// GET  /api/v1/admin/payable/reconcile   report only
// POST /api/v1/admin/payable/rebuild     write the derived balance
//
// Drift appears when grants or repayments were deleted while deletes did not
// reverse the balance.

package migration

import (
	"context"
	"log"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/services"
	"github.com/daniarfurniture/finance-api/store"
	"github.com/daniarfurniture/finance-api/utils"
)

// ReconcilePayable runs under the payable lock so the comparison is not
// raced by concurrent kasbon writes.
func ReconcilePayable(ctx context.Context, st store.Store, apply bool) (models.PayableReconciliation, error) {
	var r models.PayableReconciliation
	err := st.WithTx(ctx, func(q store.Queries) error {
		p, err := q.LockPayable(ctx)
		if err != nil {
			return err
		}
		txs, err := q.ListTransactions(ctx, models.TransactionFilter{
			Types: []string{models.TypeKasbon, models.TypeBayarKasbon},
		})
		if err != nil {
			return err
		}
		replay := services.Replay(txs)

		r = models.PayableReconciliation{
			Stored:   p.TotalOwed,
			Derived:  replay.Balance,
			Drift:    p.TotalOwed.Sub(replay.Balance),
			Grants:   replay.Grants,
			Repays:   replay.Repays,
			Rejected: replay.Rejected,
		}
		if !apply || r.Drift.IsZero() {
			return nil
		}
		if err := q.SavePayable(ctx, replay.Balance); err != nil {
			return err
		}
		r.Applied = true
		return nil
	})
	if err != nil {
		return models.PayableReconciliation{}, err
	}

	if r.Drift.IsZero() {
		log.Printf("✅ Kasbon balance consistent (%d grants, %d repayments)", r.Grants, r.Repays)
	} else {
		utils.SafeWarn("⚠️ Kasbon drift %s (stored %s, derived %s, applied=%v)",
			utils.FormatRupiah(r.Drift), utils.FormatRupiah(r.Stored), utils.FormatRupiah(r.Derived), r.Applied)
	}
	return r, nil
}
