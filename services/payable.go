package services

import (
	"github.com/daniarfurniture/finance-api/models"

	"github.com/shopspring/decimal"
)

// TouchesPayable reports whether a transaction type moves the kasbon balance.
func TouchesPayable(transactionType string) bool {
	return transactionType == models.TypeKasbon || transactionType == models.TypeBayarKasbon
}

// ApplyPayable returns the balance after recording a transaction of the
// given type. A repayment larger than the balance is rejected whole.
func ApplyPayable(balance decimal.Decimal, transactionType string, amount decimal.Decimal) (decimal.Decimal, error) {
	switch transactionType {
	case models.TypeKasbon:
		return balance.Add(amount), nil
	case models.TypeBayarKasbon:
		if amount.GreaterThan(balance) {
			return balance, &OverdrawError{Amount: amount, Balance: balance}
		}
		return balance.Sub(amount), nil
	}
	return balance, nil
}

// ReversePayable undoes the effect ApplyPayable had for the same type and
// amount. The result may be negative.
func ReversePayable(balance decimal.Decimal, transactionType string, amount decimal.Decimal) decimal.Decimal {
	switch transactionType {
	case models.TypeKasbon:
		return balance.Sub(amount)
	case models.TypeBayarKasbon:
		return balance.Add(amount)
	}
	return balance
}

// RebalancePayable reverses old and applies next. The edit is rejected when
// the repayment guard fails against the reversed balance or when the final
// balance would be negative.
func RebalancePayable(balance decimal.Decimal, old, next models.Transaction) (decimal.Decimal, error) {
	reversed := ReversePayable(balance, old.Type, old.Amount)
	out, err := ApplyPayable(reversed, next.Type, next.Amount)
	if err != nil {
		return balance, err
	}
	if out.IsNegative() {
		return balance, &OverdrawError{Amount: next.Amount, Balance: balance, Change: "edit", Result: out}
	}
	return out, nil
}

// RemovePayable reverses a deleted transaction. Removing a grant that has
// already been repaid is rejected.
func RemovePayable(balance decimal.Decimal, t models.Transaction) (decimal.Decimal, error) {
	out := ReversePayable(balance, t.Type, t.Amount)
	if out.IsNegative() {
		return balance, &OverdrawError{Amount: t.Amount, Balance: balance, Change: "delete", Result: out}
	}
	return out, nil
}

// PayableReplay is the balance derived by folding a transaction history.
type PayableReplay struct {
	Balance  decimal.Decimal
	Grants   int
	Repays   int
	Rejected int
}

// Replay folds txs in chronological order through ApplyPayable. Repayments
// that would overdraw are counted and skipped, matching how they were
// rejected at write time.
func Replay(txs []models.Transaction) PayableReplay {
	ordered := make([]models.Transaction, len(txs))
	copy(ordered, txs)
	SortChronological(ordered)

	r := PayableReplay{Balance: decimal.Zero}
	for _, t := range ordered {
		next, err := ApplyPayable(r.Balance, t.Type, t.Amount)
		if err != nil {
			r.Rejected++
			continue
		}
		switch t.Type {
		case models.TypeKasbon:
			r.Grants++
		case models.TypeBayarKasbon:
			r.Repays++
		}
		r.Balance = next
	}
	return r
}
