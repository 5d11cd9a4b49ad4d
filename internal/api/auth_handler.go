package api

import (
	"net/http"

	"github.com/reino/financas-api/internal/api/shared"
	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/service"
	"github.com/reino/financas-api/internal/service/auth"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	accounts   service.AccountService
	jwtService auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts service.AccountService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	candidate, err := domain.NewAccount(req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	account, err := h.accounts.RegisterAccount(r.Context(), candidate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, account)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, account)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, account *domain.Account) {
	token, err := h.jwtService.GenerateToken(r.Context(), account.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to generate token",
			"error", err,
			"account_id", account.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		Account: accountToResponse(account),
		Token:   token,
	})
}
