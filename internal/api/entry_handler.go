package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/reino/financas-api/internal/api/shared"
	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/service"
	"github.com/reino/financas-api/internal/store"
)

// EntryHandler serves the entry endpoints. Every operation is scoped to the
// authenticated account.
type EntryHandler struct {
	entries service.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entries service.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (req EntryRequest) toEntry(id, accountID int64) *domain.Entry {
	return &domain.Entry{
		ID:          id,
		AccountID:   accountID,
		Description: strings.TrimSpace(req.Description),
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		Type:        domain.EntryType(req.Type),
		Status:      domain.EntryStatus(req.Status),
	}
}

// loadOwnedEntry fetches the entry named by the {id} path parameter and
// checks that the caller owns it. It writes the error response itself.
func (h *EntryHandler) loadOwnedEntry(w http.ResponseWriter, r *http.Request) (*domain.Entry, bool) {
	callerID, entryID, ok := handleAccountIDAndPathID(w, r, "id")
	if !ok {
		return nil, false
	}

	entry, found, err := h.entries.GetByID(r.Context(), entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	if !found {
		HandleAPIError(w, r, store.ErrEntryNotFound, "")
		return nil, false
	}
	if entry.AccountID != callerID {
		logger.FromContext(r.Context()).Warn("entry access denied",
			"entry_id", entryID,
			"account_id", callerID)
		HandleAPIError(w, r, service.ErrNotOwned, "")
		return nil, false
	}
	return entry, true
}

// CreateEntry handles POST /api/entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	callerID, ok := shared.GetAccountID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req EntryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := h.entries.Save(r.Context(), req.toEntry(0, callerID))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entryToResponse(saved))
}

// GetEntry handles GET /api/entries/{id}.
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadOwnedEntry(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(entry))
}

// UpdateEntry handles PUT /api/entries/{id}. A missing status keeps the
// stored one.
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadOwnedEntry(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry := req.toEntry(existing.ID, existing.AccountID)
	if entry.Status == "" {
		entry.Status = existing.Status
	}
	entry.CreatedAt = existing.CreatedAt

	updated, err := h.entries.Update(r.Context(), entry)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(updated))
}

// DeleteEntry handles DELETE /api/entries/{id}.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadOwnedEntry(w, r)
	if !ok {
		return
	}

	if err := h.entries.Delete(r.Context(), entry); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateEntryStatus handles PATCH /api/entries/{id}/status.
func (h *EntryHandler) UpdateEntryStatus(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.loadOwnedEntry(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.entries.UpdateStatus(r.Context(), entry, domain.EntryStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(updated))
}

// parseEntryFilter reads the search-by-example query parameters.
func parseEntryFilter(r *http.Request, accountID int64) (domain.EntryFilter, error) {
	q := r.URL.Query()
	filter := domain.EntryFilter{
		AccountID:   accountID,
		Description: strings.TrimSpace(q.Get("description")),
	}

	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return filter, domain.NewValidationError("month", "must be between 1 and 12", nil)
		}
		filter.Month = month
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, domain.NewValidationError("year", "must be a number", nil)
		}
		filter.Year = year
	}
	if v := q.Get("type"); v != "" {
		t, err := domain.ParseEntryType(v)
		if err != nil {
			return filter, domain.NewValidationError("type", "has invalid value", nil)
		}
		filter.Type = t
	}
	if v := q.Get("status"); v != "" {
		s, err := domain.ParseEntryStatus(v)
		if err != nil {
			return filter, domain.NewValidationError("status", "has invalid value", nil)
		}
		filter.Status = s
	}
	return filter, nil
}

// ListEntries handles GET /api/entries.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	callerID, ok := shared.GetAccountID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter, err := parseEntryFilter(r, callerID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	found, err := h.entries.Search(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]EntryResponse, 0, len(found))
	for _, e := range found {
		resp = append(resp, entryToResponse(e))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
