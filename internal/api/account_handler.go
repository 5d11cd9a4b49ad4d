package api

import (
	"net/http"

	"github.com/reino/financas-api/internal/api/shared"
	"github.com/reino/financas-api/internal/service"
	"github.com/reino/financas-api/internal/store"
)

// AccountHandler serves account reads and balances.
type AccountHandler struct {
	accounts service.AccountService
	entries  service.EntryService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts service.AccountService, entries service.EntryService) *AccountHandler {
	return &AccountHandler{accounts: accounts, entries: entries}
}

// GetAccount handles GET /api/accounts/{id}. Callers can only read their
// own account.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	callerID, accountID, ok := handleAccountIDAndPathID(w, r, "id")
	if !ok {
		return
	}
	if callerID != accountID {
		HandleAPIError(w, r, service.ErrNotOwned, "")
		return
	}

	account, found, err := h.accounts.LookupByID(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !found {
		HandleAPIError(w, r, store.ErrAccountNotFound, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// GetBalance handles GET /api/accounts/{id}/balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	callerID, accountID, ok := handleAccountIDAndPathID(w, r, "id")
	if !ok {
		return
	}
	if callerID != accountID {
		HandleAPIError(w, r, service.ErrNotOwned, "")
		return
	}

	balance, err := h.entries.Balance(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}
