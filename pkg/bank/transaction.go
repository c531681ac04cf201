package bank

import (
	"fmt"
	"math"
	"time"
)

// TransactionType identifies a transaction's kind. The set is closed; it
// drives icon selection and the expected amount sign, though the sign is a
// convention rather than an enforced rule.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// Transaction is a single dated financial event attributed to one account.
//
// Amount is signed: negative for money leaving the account, positive for
// money entering. Date is an RFC 3339 timestamp. Category is set only on
// generated withdrawals and is used for search matching and detail display.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category,omitempty"`
}

// Time parses the transaction date. Generated dates always parse; a
// malformed date yields the zero time, which naturally sorts last and
// falls outside every bounded range.
func (t *Transaction) Time() time.Time {
	ts, err := time.Parse(time.RFC3339, t.Date)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// FormatAmount renders a currency amount for display. The repo-wide
// convention is a leading sign before the dollar symbol: -$123.45 for
// negative values, $123.45 otherwise.
func FormatAmount(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// roundCents rounds to two decimal places. Amounts are stored already
// rounded so display code never sees float artifacts.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
