package bank

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortOrder selects the direction of a date sort.
type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
)

// Filter describes a derived view over the canonical transaction list.
// Zero-valued fields are identity operations: no account filter, all-time
// range, no search, newest-first sort.
type Filter struct {
	// AccountID keeps only transactions attributed to this account.
	// Empty means no account filter.
	AccountID string

	// Range names the date window. CustomStart/CustomEnd are consulted
	// only when Range is RangeCustom.
	Range       DateRange
	CustomStart time.Time
	CustomEnd   time.Time

	// Query is a free-text search string. Blank or whitespace-only is a
	// no-op.
	Query string

	// Sort orders the result by date. Empty defaults to newest-first.
	Sort SortOrder

	// Now anchors relative date ranges. Zero means time.Now(); tests pin
	// it.
	Now time.Time
}

// Query derives a filtered, sorted view. Stages run in a fixed order —
// account filter, date filter, text search, sort — each as a pure function
// over the previous stage's output. The canonical list is never mutated.
func (d *Dataset) Query(f Filter) []Transaction {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := FilterByAccount(d.transactions, f.AccountID)
	result = FilterByDateRange(result, f.Range, now, f.CustomStart, f.CustomEnd)
	result = d.SearchTransactions(result, f.Query)

	order := f.Sort
	if order == "" {
		order = SortNewestFirst
	}
	return SortByDate(result, order)
}

// FilterByAccount keeps transactions whose AccountID matches id. An empty
// id keeps everything.
func FilterByAccount(transactions []Transaction, id string) []Transaction {
	if id == "" {
		return append([]Transaction(nil), transactions...)
	}
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.AccountID == id {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDateRange keeps transactions whose date falls inside the window
// named by r, inclusive of both bounds. RangeAll and unknown tokens keep
// everything.
func FilterByDateRange(transactions []Transaction, r DateRange, now, customStart, customEnd time.Time) []Transaction {
	switch r {
	case RangeToday, RangeWeek, RangeMonth, RangeYear, RangeCustom:
	default:
		// all, empty, and unrecognized tokens are the identity.
		return append([]Transaction(nil), transactions...)
	}
	start, end := r.Bounds(now, customStart, customEnd)
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		ts := t.Time()
		if !ts.Before(start) && !ts.After(end) {
			out = append(out, t)
		}
	}
	return out
}

// SearchTransactions keeps transactions where the lowercased query is a
// substring of any searchable field: description, owning account name,
// the date formatted as a short M/D/YYYY string, the unsigned two-decimal
// amount, the type name, or the category. Fields are OR-ed; a blank query
// keeps everything. The account name lookup uses the dataset's
// fallback-on-miss semantics.
func (d *Dataset) SearchTransactions(transactions []Transaction, query string) []Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Transaction(nil), transactions...)
	}
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if d.matches(&t, q) {
			out = append(out, t)
		}
	}
	return out
}

func (d *Dataset) matches(t *Transaction, q string) bool {
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	account := d.AccountByID(t.AccountID)
	if strings.Contains(strings.ToLower(account.Name), q) {
		return true
	}
	if strings.Contains(shortDate(t.Time()), q) {
		return true
	}
	amount := t.Amount
	if amount < 0 {
		amount = -amount
	}
	if strings.Contains(strconv.FormatFloat(amount, 'f', 2, 64), q) {
		return true
	}
	if strings.Contains(string(t.Type), q) {
		return true
	}
	if t.Category != "" && strings.Contains(strings.ToLower(t.Category), q) {
		return true
	}
	return false
}

// shortDate renders a date the way search expects to match it: M/D/YYYY
// without zero padding. Pinned to one layout so search results do not vary
// by device locale.
func shortDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// SortByDate returns a copy of transactions ordered by date. Ties keep
// their input order.
func SortByDate(transactions []Transaction, order SortOrder) []Transaction {
	out := append([]Transaction(nil), transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Time(), out[j].Time()
		if order == SortOldestFirst {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})
	return out
}
