package bank

import (
	"testing"
	"time"
)

func tx(id, accountID, description string, amount float64, date time.Time, txType TransactionType, category string) Transaction {
	return Transaction{
		ID:          id,
		AccountID:   accountID,
		Description: description,
		Amount:      amount,
		Date:        date.Format(time.RFC3339),
		Type:        txType,
		Category:    category,
	}
}

func TestFilterByAccount(t *testing.T) {
	d := testDataset(t)

	filtered := FilterByAccount(d.Transactions(), "4")

	want := 0
	for _, transaction := range d.Transactions() {
		if transaction.AccountID == "4" {
			want++
		}
	}

	if len(filtered) != want {
		t.Fatalf("expected %d transactions for account 4, got %d", want, len(filtered))
	}
	for _, transaction := range filtered {
		if transaction.AccountID != "4" {
			t.Errorf("transaction %s leaked through account filter: account %q", transaction.ID, transaction.AccountID)
		}
	}

	// Empty id is the identity.
	all := FilterByAccount(d.Transactions(), "")
	if len(all) != len(d.Transactions()) {
		t.Errorf("empty account filter dropped transactions: %d vs %d", len(all), len(d.Transactions()))
	}
}

func TestFilterByDateRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 15, 0, 0, 0, time.Local)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	transactions := []Transaction{
		tx("a", "1", "Whole Foods", -42.17, now.Add(-time.Hour), TransactionTypeWithdrawal, "Groceries"),
		tx("b", "1", "At Midnight", -10.00, midnight, TransactionTypeWithdrawal, "Other"),
		tx("c", "1", "Last Week", -20.00, now.AddDate(0, 0, -5), TransactionTypeWithdrawal, "Other"),
		tx("d", "1", "Last Year", -30.00, now.AddDate(0, -6, 0), TransactionTypeWithdrawal, "Other"),
	}

	today := FilterByDateRange(transactions, RangeToday, now, time.Time{}, time.Time{})
	if len(today) != 2 {
		t.Fatalf("expected 2 transactions today, got %d", len(today))
	}
	// The lower bound is inclusive: a transaction dated exactly at local
	// midnight is part of today.
	if today[0].ID != "a" || today[1].ID != "b" {
		t.Errorf("unexpected today set: %v, %v", today[0].ID, today[1].ID)
	}

	week := FilterByDateRange(transactions, RangeWeek, now, time.Time{}, time.Time{})
	if len(week) != 3 {
		t.Errorf("expected 3 transactions this week, got %d", len(week))
	}

	year := FilterByDateRange(transactions, RangeYear, now, time.Time{}, time.Time{})
	if len(year) != 4 {
		t.Errorf("expected 4 transactions this year, got %d", len(year))
	}

	all := FilterByDateRange(transactions, RangeAll, now, time.Time{}, time.Time{})
	if len(all) != 4 {
		t.Errorf("all-time filter dropped transactions: %d", len(all))
	}

	bogus := FilterByDateRange(transactions, DateRange("bogus"), now, time.Time{}, time.Time{})
	if len(bogus) != 4 {
		t.Errorf("unknown token should be the identity, got %d of 4", len(bogus))
	}
}

func TestFilterByDateRangeIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 15, 0, 0, 0, time.Local)
	transactions := []Transaction{
		tx("a", "1", "One", -1, now.Add(-time.Hour), TransactionTypeWithdrawal, "Other"),
		tx("b", "1", "Two", -2, now.AddDate(0, 0, -3), TransactionTypeWithdrawal, "Other"),
		tx("c", "1", "Three", -3, now.AddDate(0, 0, -20), TransactionTypeWithdrawal, "Other"),
	}

	// Widening an already-narrowed list must not change it.
	narrow := FilterByDateRange(transactions, RangeWeek, now, time.Time{}, time.Time{})
	widened := FilterByDateRange(narrow, RangeMonth, now, time.Time{}, time.Time{})

	if len(widened) != len(narrow) {
		t.Fatalf("wider range changed a narrower list: %d vs %d", len(widened), len(narrow))
	}
	for i := range narrow {
		if widened[i].ID != narrow[i].ID {
			t.Errorf("transaction order changed at %d", i)
		}
	}
}

func TestCustomRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 15, 0, 0, 0, time.Local)
	transactions := []Transaction{
		tx("a", "1", "In", -1, now.AddDate(0, 0, -2), TransactionTypeWithdrawal, "Other"),
		tx("b", "1", "Out", -2, now.AddDate(0, 0, -10), TransactionTypeWithdrawal, "Other"),
	}

	start := now.AddDate(0, 0, -3)
	got := FilterByDateRange(transactions, RangeCustom, now, start, now)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("custom range returned wrong set: %v", got)
	}

	// A custom range without both endpoints degrades to all-time.
	loose := FilterByDateRange(transactions, RangeCustom, now, time.Time{}, time.Time{})
	if len(loose) != 2 {
		t.Errorf("incomplete custom range should keep everything, got %d", len(loose))
	}
}

func TestSearch(t *testing.T) {
	d := testDataset(t)
	now := time.Date(2025, 6, 15, 15, 0, 0, 0, time.Local)

	transactions := []Transaction{
		tx("a", "1", "Whole Foods", -42.17, now, TransactionTypeWithdrawal, "Groceries"),
		tx("b", "2", "Starbucks", -5.25, now, TransactionTypeWithdrawal, "Dining"),
		tx("c", "3", "Salary Deposit", 2000, now, TransactionTypeDeposit, ""),
	}

	// Case-mixed query against the description.
	got := d.SearchTransactions(transactions, "whole foods")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("description search failed: %v", got)
	}

	// Account name: account 3 is the High-Yield Savings.
	got = d.SearchTransactions(transactions, "high-yield")
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("account name search failed: %v", got)
	}

	// Unsigned two-decimal amount.
	got = d.SearchTransactions(transactions, "42.17")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("amount search failed: %v", got)
	}

	// Type name.
	got = d.SearchTransactions(transactions, "deposit")
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("type search failed: %v", got)
	}

	// Category.
	got = d.SearchTransactions(transactions, "dining")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("category search failed: %v", got)
	}

	// Short date, M/D/YYYY without padding.
	got = d.SearchTransactions(transactions, "6/15/2025")
	if len(got) != 3 {
		t.Fatalf("date search expected all 3, got %d", len(got))
	}

	// Blank and whitespace queries are the identity.
	if got = d.SearchTransactions(transactions, "   "); len(got) != 3 {
		t.Errorf("whitespace query dropped transactions: %d", len(got))
	}

	// No match.
	if got = d.SearchTransactions(transactions, "zzzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestSearchExactDescriptionInDataset(t *testing.T) {
	d := testDataset(t)

	// Searching for a transaction's own description must return it.
	target := d.Transactions()[0]
	got := d.SearchTransactions(d.Transactions(), target.Description)

	found := false
	for _, transaction := range got {
		if transaction.ID == target.ID {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("search for %q did not return transaction %s", target.Description, target.ID)
	}
}

func TestSortByDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 15, 0, 0, 0, time.Local)
	transactions := []Transaction{
		tx("a", "1", "One", -1, now.AddDate(0, 0, -2), TransactionTypeWithdrawal, "Other"),
		tx("b", "1", "Two", -2, now, TransactionTypeWithdrawal, "Other"),
		tx("c", "1", "Three", -3, now.AddDate(0, 0, -9), TransactionTypeWithdrawal, "Other"),
	}

	newest := SortByDate(transactions, SortNewestFirst)
	oldest := SortByDate(transactions, SortOldestFirst)

	if newest[0].ID != "b" || newest[2].ID != "c" {
		t.Fatalf("newest-first order wrong: %v %v %v", newest[0].ID, newest[1].ID, newest[2].ID)
	}

	// Without ties, reversing the newest-first order gives oldest-first.
	for i := range newest {
		if newest[len(newest)-1-i].ID != oldest[i].ID {
			t.Fatalf("order flag is not order-reversing at index %d", i)
		}
	}

	// Input untouched.
	if transactions[0].ID != "a" {
		t.Error("sort mutated its input")
	}
}

func TestRecentIsPrefixOfNewestSort(t *testing.T) {
	d := testDataset(t)

	recent := d.RecentTransactions(5)
	sorted := SortByDate(d.Transactions(), SortNewestFirst)

	if len(recent) != 5 {
		t.Fatalf("expected 5 recent transactions, got %d", len(recent))
	}
	for i := range recent {
		if recent[i].ID != sorted[i].ID {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, sorted[i].ID)
		}
	}
}

func TestQueryComposition(t *testing.T) {
	d := testDataset(t)
	now := time.Now()

	got := d.Query(Filter{
		AccountID: "1",
		Range:     RangeMonth,
		Sort:      SortOldestFirst,
		Now:       now,
	})

	for _, transaction := range got {
		if transaction.AccountID != "1" {
			t.Errorf("account filter not applied: %s", transaction.AccountID)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Time().Before(got[i-1].Time()) {
			t.Fatalf("oldest-first sort not applied at index %d", i)
		}
	}
}
