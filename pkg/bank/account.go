package bank

// AccountType identifies which kind of account a record describes.
// The set is closed; rendering and available fields branch on it.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

// SavingsDetails carries the fields that only exist on savings accounts.
type SavingsDetails struct {
	// InterestRate is the annual percentage yield, e.g. 4.5.
	InterestRate float64 `json:"interest_rate"`
}

// CreditDetails carries the fields that only exist on credit accounts.
type CreditDetails struct {
	AvailableCredit float64 `json:"available_credit"`
	MinimumPayment  float64 `json:"minimum_payment"`
	// DueDate is the next payment due date, formatted YYYY-MM-DD.
	DueDate string `json:"due_date"`
}

// Account is a financial container with a type, balance, and identifying
// number. Type-specific fields live in the Savings/Credit payloads so a
// checking account can never carry a due date; exactly one payload may be
// non-nil, matching Type.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	// Balance is signed; credit accounts carry the amount owed as a
	// negative balance.
	Balance        float64 `json:"balance"`
	AccountNumber  string  `json:"account_number"`
	LastFourDigits string  `json:"last_four_digits"`

	Savings *SavingsDetails `json:"savings,omitempty"`
	Credit  *CreditDetails  `json:"credit,omitempty"`
}

// LastFour derives the display suffix from the full account number.
// It must agree with the stored LastFourDigits field; call sites differ in
// which one they read, so the two are kept consistent at construction.
func (a *Account) LastFour() string {
	if len(a.AccountNumber) < 4 {
		return a.AccountNumber
	}
	return a.AccountNumber[len(a.AccountNumber)-4:]
}

// clone returns a copy whose detail payloads are independent of the
// original, so callers cannot reach back into the canonical dataset.
func (a Account) clone() Account {
	cp := a
	if a.Savings != nil {
		s := *a.Savings
		cp.Savings = &s
	}
	if a.Credit != nil {
		c := *a.Credit
		cp.Credit = &c
	}
	return cp
}
