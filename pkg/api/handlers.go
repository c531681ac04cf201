package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bankdemo/pkg/bank"
	"bankdemo/pkg/identity"
	"bankdemo/pkg/prefs"
	"bankdemo/pkg/theme"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleListAccounts returns the summary-screen account list: the
// canonical accounts with the stored visibility and order preferences
// applied. ?all=true bypasses preferences, which is what the manage
// screen shows.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.dataset.Accounts()

	if r.URL.Query().Get("all") != "true" {
		shaped, err := s.prefs.Apply(r.Context(), accounts)
		if err != nil {
			// Preference store trouble degrades to the canonical list.
			s.logger.Warn("failed to apply account preferences", zap.Error(err))
		}
		accounts = shaped
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	// Lookup never fails; an unknown id returns the designated fallback
	// account, matching the dataset contract.
	writeJSON(w, http.StatusOK, s.dataset.AccountByID(id))
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	transactions := s.dataset.Query(bank.Filter{AccountID: id})

	if limit := parseLimit(r, 0); limit > 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

// handleListTransactions is the transactions screen: account filter, named
// date range, free-text search and sort order compose in a fixed order.
// Malformed parameters degrade to their identity behavior.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bank.Filter{
		AccountID:   q.Get("account_id"),
		Range:       bank.DateRange(q.Get("range")),
		CustomStart: parseDate(q.Get("start")),
		CustomEnd:   parseDate(q.Get("end")),
		Query:       q.Get("q"),
		Sort:        bank.SortOrder(q.Get("sort")),
	}

	transactions := s.dataset.Query(filter)
	if limit := parseLimit(r, 0); limit > 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (s *Server) handleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 5)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": s.dataset.RecentTransactions(limit),
	})
}

type idListRequest struct {
	AccountIDs []string `json:"account_ids"`
}

func (s *Server) handleGetVisibleAccounts(w http.ResponseWriter, r *http.Request) {
	defaults := prefs.AccountIDs(s.dataset.Accounts())
	ids, err := s.prefs.VisibleAccountIDs(r.Context(), defaults)
	if err != nil {
		s.logger.Warn("failed to load visible accounts", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, idListRequest{AccountIDs: ids})
}

func (s *Server) handlePutVisibleAccounts(w http.ResponseWriter, r *http.Request) {
	var req idListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.prefs.SetVisibleAccountIDs(r.Context(), req.AccountIDs); err != nil {
		writeError(w, http.StatusBadGateway, "failed to save preference")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleGetAccountOrder(w http.ResponseWriter, r *http.Request) {
	defaults := prefs.AccountIDs(s.dataset.Accounts())
	ids, err := s.prefs.AccountOrderIDs(r.Context(), defaults)
	if err != nil {
		s.logger.Warn("failed to load account order", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, idListRequest{AccountIDs: ids})
}

func (s *Server) handlePutAccountOrder(w http.ResponseWriter, r *http.Request) {
	var req idListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.prefs.SetAccountOrderIDs(r.Context(), req.AccountIDs); err != nil {
		writeError(w, http.StatusBadGateway, "failed to save preference")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.idp.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, identityStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.idp.ConfirmSignUp(r.Context(), req.Username, req.Code); err != nil {
		writeError(w, identityStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.idp.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, identityStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.idp.SignOut(r.Context(), bearerToken(r)); err != nil {
		writeError(w, identityStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.idp.CurrentSession(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, identityStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// receipt is the response for the stubbed money-movement forms. The forms
// validate input and acknowledge it; no balance or transaction changes,
// the dataset is immutable for the process lifetime.
type receipt struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func newReceipt() receipt {
	return receipt{
		ID:          uuid.New().String(),
		Status:      "accepted",
		SubmittedAt: time.Now(),
	}
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromAccountID string  `json:"from_account_id"`
		ToAccountID   string  `json:"to_account_id"`
		Amount        float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FromAccountID == "" || req.ToAccountID == "" {
		writeError(w, http.StatusBadRequest, "from_account_id and to_account_id are required")
		return
	}
	if req.FromAccountID == req.ToAccountID {
		writeError(w, http.StatusBadRequest, "cannot transfer to the same account")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	s.logger.Info("transfer submitted",
		zap.String("from", req.FromAccountID),
		zap.String("to", req.ToAccountID),
		zap.Float64("amount", req.Amount),
	)
	writeJSON(w, http.StatusAccepted, newReceipt())
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string  `json:"account_id"`
		Amount    float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "account_id is required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	s.logger.Info("deposit submitted",
		zap.String("account", req.AccountID),
		zap.Float64("amount", req.Amount),
	)
	writeJSON(w, http.StatusAccepted, newReceipt())
}

func (s *Server) handleBillPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string  `json:"account_id"`
		Payee     string  `json:"payee"`
		Amount    float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccountID == "" || req.Payee == "" {
		writeError(w, http.StatusBadRequest, "account_id and payee are required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	s.logger.Info("bill payment submitted",
		zap.String("account", req.AccountID),
		zap.String("payee", req.Payee),
		zap.Float64("amount", req.Amount),
	)
	writeJSON(w, http.StatusAccepted, newReceipt())
}

func (s *Server) handleZellePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient string  `json:"recipient"`
		Amount    float64 `json:"amount"`
		Memo      string  `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Recipient == "" {
		writeError(w, http.StatusBadRequest, "recipient is required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	s.logger.Info("zelle payment submitted",
		zap.String("recipient", req.Recipient),
		zap.Float64("amount", req.Amount),
	)
	writeJSON(w, http.StatusAccepted, newReceipt())
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	scheme := theme.Scheme(r.URL.Query().Get("scheme"))
	writeJSON(w, http.StatusOK, theme.Palette(scheme))
}

// identityStatus maps provider errors onto HTTP statuses.
func identityStatus(err error) int {
	switch err {
	case identity.ErrUserExists:
		return http.StatusConflict
	case identity.ErrUserNotFound:
		return http.StatusNotFound
	case identity.ErrBadCredentials, identity.ErrUserNotConfirmed, identity.ErrBadCode, identity.ErrNoSession:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// parseLimit reads the limit query parameter, returning fallback when the
// parameter is absent or malformed.
func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// parseDate accepts a YYYY-MM-DD or RFC 3339 value; anything else yields
// the zero time, which downgrades a custom range to all-time.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}
