// Package prefs manages the two user preferences that shape the account
// summary screen: which accounts are visible and in what order. Both are
// stored in the device preference store as JSON-encoded arrays of account
// ids under their own keys.
package prefs

import (
	"context"
	"encoding/json"
	"time"

	"bankdemo/pkg/bank"
	"bankdemo/pkg/kvstore"
	"bankdemo/pkg/logging"
	"bankdemo/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store keys. The leading @ matches the blobs written by earlier builds of
// the app, so preferences survive an upgrade.
const (
	VisibleAccountsKey = "@visible_accounts"
	AccountOrderKey    = "@account_order"
)

// Manager reads and writes account preferences through a kvstore.Store.
// Concurrent loads of the same key are deduplicated; the store may be a
// slow remote mirror.
type Manager struct {
	store     kvstore.Store
	logger    *logging.Logger
	collector metrics.Collector
	sf        singleflight.Group
}

// NewManager creates a preference manager over the given store.
func NewManager(store kvstore.Store) *Manager {
	return NewManagerWithMetrics(store, metrics.NoOpCollector{})
}

// NewManagerWithMetrics creates a preference manager with a custom metrics
// collector.
func NewManagerWithMetrics(store kvstore.Store, collector metrics.Collector) *Manager {
	return &Manager{
		store:     store,
		logger:    logging.Global().Named("prefs"),
		collector: collector,
	}
}

// VisibleAccountIDs returns the stored visible-account id set. When no
// blob is stored, the defaults are persisted and returned, so a fresh
// device converges to an explicit preference. An empty stored set still
// means "show everything"; that interpretation lives in VisibleAccounts.
func (m *Manager) VisibleAccountIDs(ctx context.Context, defaults []string) ([]string, error) {
	return m.loadIDs(ctx, VisibleAccountsKey, defaults)
}

// SetVisibleAccountIDs stores the visible-account id set.
func (m *Manager) SetVisibleAccountIDs(ctx context.Context, ids []string) error {
	return m.saveIDs(ctx, VisibleAccountsKey, ids)
}

// AccountOrderIDs returns the stored display order. When no blob is
// stored, the defaults (canonical dataset order) are persisted and
// returned.
func (m *Manager) AccountOrderIDs(ctx context.Context, defaults []string) ([]string, error) {
	return m.loadIDs(ctx, AccountOrderKey, defaults)
}

// SetAccountOrderIDs stores the display order.
func (m *Manager) SetAccountOrderIDs(ctx context.Context, ids []string) error {
	return m.saveIDs(ctx, AccountOrderKey, ids)
}

// Apply returns accounts ordered by the stored display order with hidden
// accounts removed. Store failures degrade to the canonical list; the
// error is returned alongside so callers can surface it.
func (m *Manager) Apply(ctx context.Context, accounts []bank.Account) ([]bank.Account, error) {
	ids := AccountIDs(accounts)

	order, err := m.AccountOrderIDs(ctx, ids)
	if err != nil {
		return accounts, err
	}
	visible, err := m.VisibleAccountIDs(ctx, ids)
	if err != nil {
		return accounts, err
	}

	return VisibleAccounts(OrderAccounts(accounts, order), visible), nil
}

func (m *Manager) loadIDs(ctx context.Context, key string, defaults []string) ([]string, error) {
	v, err, _ := m.sf.Do(key, func() (interface{}, error) {
		start := time.Now()
		raw, err := m.store.Get(ctx, key)
		m.collector.RecordStoreOp(m.store.Name(), "get", err == nil || kvstore.IsNotFound(err), time.Since(start))

		if kvstore.IsNotFound(err) {
			// First run on this device: persist the defaults.
			if err := m.saveIDs(ctx, key, defaults); err != nil {
				return defaults, err
			}
			return defaults, nil
		}
		if err != nil {
			return defaults, kvstore.WrapError(err, m.store.Name(), "get")
		}

		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			// A corrupt blob degrades to the defaults rather than failing.
			m.logger.Warn("malformed preference blob, using defaults",
				zap.String("key", key),
				zap.Error(err),
			)
			return defaults, nil
		}
		return ids, nil
	})

	ids := v.([]string)
	return append([]string(nil), ids...), err
}

func (m *Manager) saveIDs(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	start := time.Now()
	err = m.store.Set(ctx, key, string(raw))
	m.collector.RecordStoreOp(m.store.Name(), "set", err == nil, time.Since(start))
	if err != nil {
		return kvstore.WrapError(err, m.store.Name(), "set")
	}
	return nil
}

// AccountIDs extracts the id of each account, preserving order.
func AccountIDs(accounts []bank.Account) []string {
	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	return ids
}

// VisibleAccounts keeps the accounts whose id is in visible. An empty or
// nil set means no preference is in effect and every account is shown;
// "nothing stored" must never render an empty summary screen.
func VisibleAccounts(accounts []bank.Account, visible []string) []bank.Account {
	if len(visible) == 0 {
		return accounts
	}
	set := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		set[id] = struct{}{}
	}
	out := make([]bank.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := set[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// OrderAccounts sorts accounts by their index in the order list. Accounts
// present in the list come first, in list order; accounts missing from the
// list follow, keeping their relative order among themselves. This stable
// partition is what determines which account the user sees first.
func OrderAccounts(accounts []bank.Account, order []string) []bank.Account {
	if len(order) == 0 {
		return accounts
	}
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	known := make([]bank.Account, 0, len(accounts))
	unknown := make([]bank.Account, 0)
	for _, a := range accounts {
		if _, ok := index[a.ID]; ok {
			known = append(known, a)
		} else {
			unknown = append(unknown, a)
		}
	}

	// Insertion sort keeps equal-index entries stable; the list is tiny.
	for i := 1; i < len(known); i++ {
		for j := i; j > 0 && index[known[j].ID] < index[known[j-1].ID]; j-- {
			known[j], known[j-1] = known[j-1], known[j]
		}
	}

	return append(known, unknown...)
}
