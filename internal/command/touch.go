package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/mind0bender/phew/internal/repository"
	"github.com/mind0bender/phew/internal/validate"
)

// touch creates a password-protected phew, or refreshes timestamps when the
// path is already taken. A folder holding the path wins over any phew.
func (d *Dispatcher) touch(ctx context.Context, inv *Invocation) Result {
	if res, denied := checkAccess(inv.User, true); denied {
		return res
	}

	args := Parse(inv.Raw, Option{Name: "pswd", Aliases: []string{"p", "password"}})
	filename := args.Positional(1)
	secret := args.String("pswd")

	if err := validate.Filename(filename); err != nil {
		return fail(http.StatusBadRequest, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}
	if err := validate.PhewPassword(secret); err != nil {
		return fail(http.StatusBadRequest, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
	}

	target := Resolve(inv.PWD, filename)

	created, err := d.ns.Touch(ctx, inv.User.ID, target, secret)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(http.StatusNotFound, ActionError{
			Message: fmt.Sprintf("[404] cannot access '%s': No such file or directory", path.Dir(target)),
			Code:    http.StatusNotFound,
		})
	}
	if err != nil {
		return d.internalFault("touch", err)
	}

	if !created {
		// an existing folder or phew only had its timestamps refreshed
		return ok(Payload{Content: ""})
	}
	return ok(Payload{Content: fmt.Sprintf("phew '%s': creation successful", target)})
}
