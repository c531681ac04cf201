package bank

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// GeneratorConfig controls the synthetic dataset shape. The zero value is
// valid; defaults reproduce the reference dataset (100 transactions over a
// trailing 30-day window, seeded from the clock).
type GeneratorConfig struct {
	// TransactionCount is the number of transactions to generate.
	TransactionCount int

	// WindowDays is how far back transaction dates may fall.
	WindowDays int

	// Seed seeds the random source. Zero selects a clock-based seed.
	Seed int64

	// Now anchors the generation window. Zero means time.Now().
	Now time.Time
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	if c.TransactionCount == 0 {
		c.TransactionCount = 100
	}
	if c.WindowDays == 0 {
		c.WindowDays = 30
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Now.IsZero() {
		c.Now = time.Now()
	}
	return c
}

// spendingCategory pairs a purchase category with its merchants and the
// amount range typical for it. Withdrawal amounts are drawn uniformly from
// [min, min+span) and negated.
type spendingCategory struct {
	name      string
	merchants []string
	min       float64
	span      float64
}

var spendingCategories = []spendingCategory{
	{"Groceries", []string{"Whole Foods", "Trader Joe's", "Safeway", "Target", "Walmart"}, 20, 150},
	{"Dining", []string{"Starbucks", "Chipotle", "Panera Bread", "Shake Shack", "Sweetgreen"}, 10, 50},
	{"Shopping", []string{"Amazon", "Best Buy", "Nike", "Apple Store", "Zara"}, 30, 200},
	{"Entertainment", []string{"Netflix", "Spotify", "AMC Theaters", "Disney+", "HBO Max"}, 5, 30},
	{"Transportation", []string{"Uber", "Lyft", "Shell", "Exxon", "BP"}, 15, 40},
	{"Utilities", []string{"AT&T", "Verizon", "Comcast", "PG&E", "Water Company"}, 50, 100},
	{"Health", []string{"CVS Pharmacy", "Walgreens", "Kaiser Permanente", "24 Hour Fitness", "SoulCycle"}, 20, 80},
	{"Travel", []string{"Airbnb", "Expedia", "Delta Airlines", "Marriott", "Hilton"}, 100, 300},
	{"Education", []string{"Udemy", "Coursera", "Barnes & Noble", "Chegg", "Pearson"}, 20, 60},
	{"Other", []string{"PayPal", "Venmo", "Square", "Stripe", "Western Union"}, 10, 100},
}

var depositDescriptions = []string{
	"Salary Deposit",
	"Direct Deposit",
	"Interest Payment",
	"Refund",
	"Transfer Received",
}

// canonicalAccounts returns the fixed four-account list: two checking, one
// savings, one credit, so every type-specific rendering branch has data.
func canonicalAccounts() []Account {
	return []Account{
		{
			ID:             "1",
			Name:           "Everyday Checking",
			Type:           AccountTypeChecking,
			Balance:        5234.56,
			AccountNumber:  "1234567890",
			LastFourDigits: "7890",
		},
		{
			ID:             "2",
			Name:           "Secondary Checking",
			Type:           AccountTypeChecking,
			Balance:        1234.56,
			AccountNumber:  "0987654321",
			LastFourDigits: "4321",
		},
		{
			ID:             "3",
			Name:           "High-Yield Savings",
			Type:           AccountTypeSavings,
			Balance:        15000.00,
			AccountNumber:  "1122334455",
			LastFourDigits: "4455",
			Savings:        &SavingsDetails{InterestRate: 4.5},
		},
		{
			ID:             "4",
			Name:           "Platinum Credit Card",
			Type:           AccountTypeCredit,
			Balance:        -2345.67,
			AccountNumber:  "5544332211",
			LastFourDigits: "2211",
			Credit: &CreditDetails{
				AvailableCredit: 7654.33,
				MinimumPayment:  50.00,
				DueDate:         "2024-04-15",
			},
		},
	}
}

// generateTransactions produces the synthetic history: roughly 70%
// withdrawals with category-scaled negative amounts, the rest split between
// deposits (positive) and transfers out (negative). The result is sorted
// newest-first; individual values are random but the shape is fixed.
func generateTransactions(accounts []Account, cfg GeneratorConfig) []Transaction {
	r := rand.New(rand.NewSource(cfg.Seed))
	transactions := make([]Transaction, 0, cfg.TransactionCount)

	for i := 0; i < cfg.TransactionCount; i++ {
		date := randomRecentDate(r, cfg.Now, cfg.WindowDays)

		var (
			txType      TransactionType
			description string
			category    string
			amount      float64
		)
		if r.Float64() < 0.7 {
			txType = TransactionTypeWithdrawal
			cat := spendingCategories[r.Intn(len(spendingCategories))]
			category = cat.name
			description = cat.merchants[r.Intn(len(cat.merchants))]
			amount = -(r.Float64()*cat.span + cat.min)
		} else if r.Float64() < 0.5 {
			txType = TransactionTypeDeposit
			description = depositDescriptions[r.Intn(len(depositDescriptions))]
			amount = r.Float64()*2000 + 500
		} else {
			txType = TransactionTypeTransfer
			description = "Transfer to Savings"
			amount = -(r.Float64()*500 + 100)
		}

		transactions = append(transactions, Transaction{
			ID:          fmt.Sprintf("transaction-%d", i),
			AccountID:   accounts[r.Intn(len(accounts))].ID,
			Description: description,
			Amount:      roundCents(amount),
			Date:        date.Format(time.RFC3339),
			Type:        txType,
			Category:    category,
		})
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Time().After(transactions[j].Time())
	})

	return transactions
}

// randomRecentDate picks a timestamp 0..windowDays days back from now with
// a random hour and minute, keeping now's seconds so two runs don't
// collide on exact midnights.
func randomRecentDate(r *rand.Rand, now time.Time, windowDays int) time.Time {
	d := now.AddDate(0, 0, -r.Intn(windowDays))
	return time.Date(d.Year(), d.Month(), d.Day(), r.Intn(24), r.Intn(60), d.Second(), 0, d.Location())
}
