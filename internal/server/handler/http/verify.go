package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/repository"
	"go.uber.org/zap"
)

// Verifier defines the verification-token operations required by the
// email confirmation endpoints.
type Verifier interface {
	ResolveVerification(ctx context.Context, token string) (*models.User, error)
	Verify(ctx context.Context, token string) (*models.User, error)
	DeleteAccount(ctx context.Context, token string) error
}

// VerifyHandler serves the email verification and account deletion
// endpoints reached through mailed links.
type VerifyHandler struct {
	Auth Verifier
	Log  *zap.Logger
}

// verifyResult is the wire shape of the verification endpoints.
type verifyResult struct {
	UserFound bool                  `json:"userFound"`
	User      *models.ShareableUser `json:"user,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// tokenFault maps token resolution failures onto the page's error strings.
func tokenFault(err error) verifyResult {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return verifyResult{Error: "token expired"}
	case errors.Is(err, repository.ErrNotFound):
		return verifyResult{Error: "user does not exist"}
	default:
		return verifyResult{Error: "Invalid token"}
	}
}

// VerifyInfo reports the user a verification token addresses, so the page
// can show who is about to confirm.
func (h *VerifyHandler) VerifyInfo(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	user, err := h.Auth.ResolveVerification(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusOK, tokenFault(err))
		return
	}
	shareable := user.Shareable()
	writeJSON(w, http.StatusOK, verifyResult{UserFound: true, User: &shareable})
}

// Verify consumes the confirmation form: an affirmative answer marks the
// user verified, anything else deletes the account and its namespace.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusOK, verifyResult{Error: "Invalid input"})
		return
	}
	answer := r.PostFormValue("verify")

	if isAffirmative(answer) {
		user, err := h.Auth.Verify(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusOK, tokenFault(err))
			return
		}
		shareable := user.Shareable()
		writeJSON(w, http.StatusOK, verifyResult{UserFound: true, User: &shareable})
		return
	}

	if err := h.Auth.DeleteAccount(r.Context(), token); err != nil {
		writeJSON(w, http.StatusOK, tokenFault(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Delete consumes the account deletion form; only the literal answer
// "delete" proceeds.
func (h *VerifyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusOK, verifyResult{Error: "Invalid input"})
		return
	}
	if r.PostFormValue("delete") != "delete" {
		writeJSON(w, http.StatusOK, verifyResult{Error: "Invalid input"})
		return
	}

	if err := h.Auth.DeleteAccount(r.Context(), token); err != nil {
		writeJSON(w, http.StatusOK, tokenFault(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func isAffirmative(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
