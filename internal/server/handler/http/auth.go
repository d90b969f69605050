package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mind0bender/phew/internal/command"
	"github.com/mind0bender/phew/internal/middleware"
	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/repository"
	"github.com/mind0bender/phew/internal/service"
	"github.com/mind0bender/phew/internal/validate"
	"go.uber.org/zap"
)

// Authenticator defines the authentication operations required by the
// continuation endpoints.
type Authenticator interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, *models.Session, error)
	Login(ctx context.Context, name, password string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves the second leg of the login and signup continuations
// plus logout. The endpoints accept the form fields the command layer
// staged in its envelope data.
type AuthHandler struct {
	Auth Authenticator
	Log  *zap.Logger
}

// completedEnvelope builds a continuation-terminating error envelope: the
// payload still carries the completion marker so the client stops waiting.
func completedEnvelope(errs ...command.ActionError) command.Envelope {
	return command.Envelope{
		Success: false,
		Data:    &command.Payload{Content: "", FetchForm: command.Completed()},
		Errors:  errs,
	}
}

// Login completes the login continuation: it re-validates the staged
// credentials, checks them against the stored hash, and commits the
// session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, completedEnvelope(
			command.ActionError{Message: "Invalid input", Code: http.StatusBadRequest},
		))
		return
	}
	name := r.PostFormValue("name")
	password := r.PostFormValue("password")

	var errs []command.ActionError
	if err := validate.UserName(name); err != nil {
		errs = append(errs, command.ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.Password(password); err != nil {
		errs = append(errs, command.ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if len(errs) > 0 {
		writeEnvelope(w, http.StatusBadRequest, completedEnvelope(errs...))
		return
	}

	user, session, err := h.Auth.Login(r.Context(), name, password)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeEnvelope(w, http.StatusNotFound, completedEnvelope(
			command.ActionError{Message: "User not found", Code: http.StatusNotFound},
		))
		return
	case errors.Is(err, service.ErrWrongPassword):
		writeEnvelope(w, http.StatusUnauthorized, completedEnvelope(
			command.ActionError{
				Message: "Authentication Error: User identification failed\nAccess denied.",
				Code:    http.StatusUnauthorized,
			},
		))
		return
	case err != nil:
		h.Log.Error("login", zap.Error(err))
		writeEnvelope(w, http.StatusInternalServerError, completedEnvelope(
			command.ActionError{Message: "Internal server error", Code: http.StatusInternalServerError},
		))
		return
	}

	setSessionCookie(w, session)
	writeEnvelope(w, http.StatusOK, command.Envelope{
		Success: true,
		Data: &command.Payload{
			Content: fmt.Sprintf("User identified: %s\nLogged in at   : %s\nAuthorization confirmed.",
				user.Name, time.Now().Format("1/2/2006, 3:04:05 PM")),
			FetchForm:  command.Completed(),
			UpdateUser: true,
			Data:       map[string]models.ShareableUser{"user": user.Shareable()},
		},
	})
}

// Signup completes the signup continuation: it registers the user,
// provisions the starter namespace, and commits the session cookie.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, completedEnvelope(
			command.ActionError{Message: "Invalid input", Code: http.StatusBadRequest},
		))
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	var errs []command.ActionError
	if err := validate.UserName(name); err != nil {
		errs = append(errs, command.ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.Email(email); err != nil {
		errs = append(errs, command.ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.Password(password); err != nil {
		errs = append(errs, command.ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if len(errs) > 0 {
		writeEnvelope(w, http.StatusBadRequest, completedEnvelope(errs...))
		return
	}

	user, session, err := h.Auth.Signup(r.Context(), name, email, password)
	switch {
	case errors.Is(err, service.ErrNameTaken):
		writeEnvelope(w, http.StatusConflict, completedEnvelope(
			command.ActionError{
				Message: fmt.Sprintf("username: %s has been secured by another user", name),
				Code:    http.StatusConflict,
			},
		))
		return
	case errors.Is(err, service.ErrEmailTaken):
		writeEnvelope(w, http.StatusConflict, completedEnvelope(
			command.ActionError{
				Message: fmt.Sprintf("email: %s is registered with another user", email),
				Code:    http.StatusConflict,
			},
		))
		return
	case err != nil:
		h.Log.Error("signup", zap.Error(err))
		writeEnvelope(w, http.StatusInternalServerError, completedEnvelope(
			command.ActionError{Message: "Internal server error", Code: http.StatusInternalServerError},
		))
		return
	}

	setSessionCookie(w, session)
	writeEnvelope(w, http.StatusCreated, command.Envelope{
		Success: true,
		Data: &command.Payload{
			Content: fmt.Sprintf("signed up as %s\nat %s\n\nWe've sent a verification email to %s",
				user.Name, time.Now().UTC().Format(http.TimeFormat), user.Email),
			FetchForm:  command.Completed(),
			UpdateUser: true,
			Data:       map[string]models.ShareableUser{"user": user.Shareable()},
		},
	})
}

// Logout drops the current session and expires the cookie. Safe to call
// without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())
	if err := h.Auth.Logout(r.Context(), token); err != nil {
		h.Log.Error("logout", zap.Error(err))
		writeEnvelope(w, http.StatusInternalServerError, command.ErrInternal().Envelope)
		return
	}
	expireSessionCookie(w)
	writeEnvelope(w, http.StatusOK, command.Envelope{
		Success: true,
		Data:    &command.Payload{Content: "", UpdateUser: true},
	})
}

func setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func expireSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
