// migration/normalize_types.go
// Rewrites legacy transaction type spellings to their current catalog names.
//
// USAGE:
// POST /api/v1/admin/normalize-types (dry run with ?apply=false)
//
// The classifier already buckets legacy spellings like their replacement, so
// running this only changes what the cashflow page displays and filters.

package migration

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/daniarfurniture/finance-api/models"
	"github.com/daniarfurniture/finance-api/store"
)

// Aliases maps legacy spellings to current ones.
type Aliases interface {
	Legacy() map[string]string
}

// TypeRename is the outcome for one legacy spelling.
type TypeRename struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int64  `json:"count"`
}

// NormalizeTypes rewrites every legacy type in one transaction. With apply
// false it only counts the affected rows.
func NormalizeTypes(ctx context.Context, st store.Store, aliases Aliases, apply bool) ([]TypeRename, error) {
	legacy := aliases.Legacy()
	from := make([]string, 0, len(legacy))
	for k := range legacy {
		from = append(from, k)
	}
	sort.Strings(from)

	results := make([]TypeRename, 0, len(from))
	err := st.WithTx(ctx, func(q store.Queries) error {
		for _, old := range from {
			r := TypeRename{From: old, To: legacy[old]}
			if apply {
				n, err := q.RenameTransactionType(ctx, old, r.To)
				if err != nil {
					return fmt.Errorf("rename %q: %w", old, err)
				}
				r.Count = n
			} else {
				txs, err := q.ListTransactions(ctx, models.TransactionFilter{Types: []string{old}})
				if err != nil {
					return fmt.Errorf("count %q: %w", old, err)
				}
				r.Count = int64(len(txs))
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Count > 0 {
			log.Printf("🔁 %s -> %s: %d transaction(s) (apply=%v)", r.From, r.To, r.Count, apply)
		}
	}
	return results, nil
}
