package bank

import "testing"

func TestCanonicalAccounts(t *testing.T) {
	d := testDataset(t)
	accounts := d.Accounts()

	tests := []struct {
		id      string
		name    string
		accType AccountType
		balance float64
	}{
		{"1", "Everyday Checking", AccountTypeChecking, 5234.56},
		{"2", "Secondary Checking", AccountTypeChecking, 1234.56},
		{"3", "High-Yield Savings", AccountTypeSavings, 15000.00},
		{"4", "Platinum Credit Card", AccountTypeCredit, -2345.67},
	}

	for i, tt := range tests {
		a := accounts[i]
		if a.ID != tt.id || a.Name != tt.name || a.Type != tt.accType || a.Balance != tt.balance {
			t.Errorf("account %d = {%s %s %s %v}, want {%s %s %s %v}",
				i, a.ID, a.Name, a.Type, a.Balance, tt.id, tt.name, tt.accType, tt.balance)
		}
	}
}

func TestAccountTypePayloads(t *testing.T) {
	d := testDataset(t)

	for _, a := range d.Accounts() {
		switch a.Type {
		case AccountTypeSavings:
			if a.Savings == nil {
				t.Errorf("savings account %s missing savings payload", a.ID)
			} else if a.Savings.InterestRate != 4.5 {
				t.Errorf("savings account %s interest rate = %v, want 4.5", a.ID, a.Savings.InterestRate)
			}
			if a.Credit != nil {
				t.Errorf("savings account %s carries a credit payload", a.ID)
			}
		case AccountTypeCredit:
			if a.Credit == nil {
				t.Errorf("credit account %s missing credit payload", a.ID)
			} else {
				if a.Credit.AvailableCredit <= 0 {
					t.Errorf("credit account %s available credit = %v", a.ID, a.Credit.AvailableCredit)
				}
				if a.Credit.DueDate == "" {
					t.Errorf("credit account %s missing due date", a.ID)
				}
			}
			if a.Savings != nil {
				t.Errorf("credit account %s carries a savings payload", a.ID)
			}
		default:
			if a.Savings != nil || a.Credit != nil {
				t.Errorf("checking account %s carries a detail payload", a.ID)
			}
		}
	}
}

func TestLastFourAgreesWithStoredDigits(t *testing.T) {
	d := testDataset(t)

	for _, a := range d.Accounts() {
		if got := a.LastFour(); got != a.LastFourDigits {
			t.Errorf("account %s LastFour() = %q, stored %q", a.ID, got, a.LastFourDigits)
		}
	}
}

func TestAccountByIDFallback(t *testing.T) {
	d := testDataset(t)

	known := d.AccountByID("3")
	if known.ID != "3" {
		t.Fatalf("lookup of known id returned %s", known.ID)
	}

	// Unknown ids degrade to the first canonical account, never an error.
	fallback := d.AccountByID("does-not-exist")
	if fallback.ID != "1" {
		t.Fatalf("unknown id should fall back to the first account, got %s", fallback.ID)
	}
}

func TestDatasetImmutable(t *testing.T) {
	d := testDataset(t)

	accounts := d.Accounts()
	accounts[0].Name = "mutated"
	accounts[2].Savings.InterestRate = 0

	fresh := d.Accounts()
	if fresh[0].Name != "Everyday Checking" {
		t.Error("mutating a returned account leaked into the dataset")
	}
	if fresh[2].Savings.InterestRate != 4.5 {
		t.Error("mutating a returned detail payload leaked into the dataset")
	}

	transactions := d.Transactions()
	transactions[0].Description = "mutated"
	if d.Transactions()[0].Description == "mutated" {
		t.Error("mutating a returned transaction leaked into the dataset")
	}
}

func TestRecentTransactionsClamped(t *testing.T) {
	d := testDataset(t)

	if got := d.RecentTransactions(3); len(got) != 3 {
		t.Errorf("expected 3, got %d", len(got))
	}
	if got := d.RecentTransactions(1000); len(got) != 100 {
		t.Errorf("oversized request should clamp to 100, got %d", len(got))
	}
	if got := d.RecentTransactions(-1); len(got) != 0 {
		t.Errorf("negative request should clamp to 0, got %d", len(got))
	}
}
