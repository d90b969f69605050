// Package http provides the HTTP surface of the phew terminal: the command
// endpoint, the login/signup continuation endpoints, and the email
// verification pages.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mind0bender/phew/internal/command"
	"github.com/mind0bender/phew/internal/middleware"
	"github.com/mind0bender/phew/internal/models"
	"go.uber.org/zap"
)

// Dispatcher executes one raw command line for an identity.
type Dispatcher interface {
	Dispatch(ctx context.Context, user models.ShareableUser, pwd, raw string) command.Result
}

// SessionEnder drops a session row by token.
type SessionEnder interface {
	Logout(ctx context.Context, token string) error
}

// CommandHandler serves the terminal command endpoint.
type CommandHandler struct {
	Dispatcher Dispatcher
	Sessions   SessionEnder
	Log        *zap.Logger
}

// CommandRequest is the JSON payload of a typed command: the raw line and
// the client's current directory.
type CommandRequest struct {
	Cmd *string `json:"cmd"`
	PWD string  `json:"pwd"`
}

// Command executes one command line. The resolved identity comes from the
// session middleware; commands that clear the session (logout) expire the
// cookie on the way out.
func (h *CommandHandler) Command(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cmd == nil {
		writeEnvelope(w, http.StatusBadRequest, command.Envelope{
			Success: false,
			Errors:  []command.ActionError{{Message: "Invalid input", Code: http.StatusBadRequest}},
		})
		return
	}
	if req.PWD == "" {
		req.PWD = "/"
	}

	user := middleware.GetUser(r.Context())
	res := h.Dispatcher.Dispatch(r.Context(), user, req.PWD, *req.Cmd)

	if res.ClearSession {
		token := middleware.GetSessionToken(r.Context())
		if err := h.Sessions.Logout(r.Context(), token); err != nil {
			h.Log.Error("drop session", zap.Error(err))
			writeEnvelope(w, http.StatusInternalServerError, command.ErrInternal().Envelope)
			return
		}
		expireSessionCookie(w)
	}

	writeEnvelope(w, res.Status, res.Envelope)
}

// CurrentUser reports the identity the session resolves to; the client
// calls it whenever a response carries updateUser.
func (h *CommandHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, map[string]models.ShareableUser{"user": user})
}

func writeEnvelope(w http.ResponseWriter, status int, env command.Envelope) {
	writeJSON(w, status, env)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
