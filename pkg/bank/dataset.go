package bank

// Dataset owns the canonical account and transaction lists for the life of
// the process. It is constructed exactly once at startup and handed to
// consumers by reference; every screen-level view derives from the same
// lists via the query methods, which copy and never mutate.
type Dataset struct {
	accounts     []Account
	transactions []Transaction
}

// NewDataset builds the canonical dataset with the default generator shape.
func NewDataset() *Dataset {
	return NewDatasetWithConfig(GeneratorConfig{})
}

// NewDatasetWithConfig builds the canonical dataset with an explicit
// generator configuration. Tests pin Seed and Now to get a reproducible
// history.
func NewDatasetWithConfig(cfg GeneratorConfig) *Dataset {
	cfg = cfg.withDefaults()
	accounts := canonicalAccounts()
	return &Dataset{
		accounts:     accounts,
		transactions: generateTransactions(accounts, cfg),
	}
}

// Accounts returns a copy of the canonical account list in canonical order.
func (d *Dataset) Accounts() []Account {
	out := make([]Account, len(d.accounts))
	for i, a := range d.accounts {
		out[i] = a.clone()
	}
	return out
}

// Transactions returns a copy of the canonical transaction list, which is
// sorted newest-first at generation time.
func (d *Dataset) Transactions() []Transaction {
	out := make([]Transaction, len(d.transactions))
	copy(out, d.transactions)
	return out
}

// AccountByID returns the account with the given id, or the first canonical
// account when the id is unknown. The fallback is deliberate: call sites
// rely on lookup never failing, so an unknown id degrades to a placeholder
// rather than an error or nil.
func (d *Dataset) AccountByID(id string) Account {
	for _, a := range d.accounts {
		if a.ID == id {
			return a.clone()
		}
	}
	return d.accounts[0].clone()
}

// RecentTransactions returns the n newest transactions, a prefix of the
// canonical newest-first list. Summary screens ask for 3 or 5.
func (d *Dataset) RecentTransactions(n int) []Transaction {
	if n < 0 {
		n = 0
	}
	if n > len(d.transactions) {
		n = len(d.transactions)
	}
	out := make([]Transaction, n)
	copy(out, d.transactions[:n])
	return out
}
