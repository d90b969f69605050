package command

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/validate"
)

// LoginPath and SignupPath are the continuation endpoints the client POSTs
// staged credentials to.
const (
	LoginPath  = "/login"
	SignupPath = "/signup"
)

// alreadyLoggedIn short-circuits login/signup for authenticated identities.
func alreadyLoggedIn(user models.ShareableUser) Result {
	return ok(Payload{
		Content: fmt.Sprintf("currently logged in as %s\nlogout to continue", user.Name),
	})
}

// login validates the typed credentials and stages a continuation to the
// login endpoint; no credential check happens on this first call.
func (d *Dispatcher) login(_ context.Context, inv *Invocation) Result {
	if inv.User.Role != models.RoleStem {
		return alreadyLoggedIn(inv.User)
	}

	args := Parse(inv.Raw,
		Option{Name: "name", Aliases: []string{"n", "user", "u"}},
		Option{Name: "password", Aliases: []string{"p", "pswd"}},
	)
	name := args.String("name")
	if name == "" {
		name = args.Positional(1)
	}
	password := args.String("password")
	if password == "" {
		password = args.Positional(2)
	}

	var errs []ActionError
	if err := validate.UserName(name); err != nil {
		errs = append(errs, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.Password(password); err != nil {
		errs = append(errs, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if len(errs) > 0 {
		return fail(http.StatusBadRequest, errs...)
	}

	return ok(Payload{
		Content:   "logging in",
		FetchForm: ContinueAt(LoginPath),
		Data:      map[string]string{"name": name, "password": password},
	})
}

// signup validates the typed fields and stages a continuation to the
// signup endpoint.
func (d *Dispatcher) signup(_ context.Context, inv *Invocation) Result {
	if inv.User.Role != models.RoleStem {
		return alreadyLoggedIn(inv.User)
	}

	args := Parse(inv.Raw,
		Option{Name: "name", Aliases: []string{"n", "user", "u"}},
		Option{Name: "email", Aliases: []string{"e"}},
		Option{Name: "password", Aliases: []string{"p", "pswd"}},
	)
	name := args.String("name")
	if name == "" {
		name = args.Positional(1)
	}
	email := args.String("email")
	if email == "" {
		email = args.Positional(2)
	}
	password := args.String("password")
	if password == "" {
		password = args.Positional(3)
	}

	var errs []ActionError
	if err := validate.UserName(name); err != nil {
		errs = append(errs, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.Email(email); err != nil {
		errs = append(errs, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.Password(password); err != nil {
		errs = append(errs, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if len(errs) > 0 {
		return fail(http.StatusBadRequest, errs...)
	}

	return ok(Payload{
		Content:   "signing up",
		FetchForm: ContinueAt(SignupPath),
		Data:      map[string]string{"name": name, "email": email, "password": password},
	})
}

// logout clears the session; only authentication is required, not
// verification.
func (d *Dispatcher) logout(_ context.Context, inv *Invocation) Result {
	if res, denied := checkAccess(inv.User, false); denied {
		return res
	}
	res := ok(Payload{
		Content:    fmt.Sprintf("Logged out of %s", inv.User.Name),
		UpdateUser: true,
	})
	res.ClearSession = true
	return res
}
