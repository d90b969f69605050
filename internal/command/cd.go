package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mind0bender/phew/internal/repository"
)

// cd verifies the target directory exists and hands the new current
// directory back to the client. Navigating to a missing directory is an
// error response, unlike an unknown verb.
func (d *Dispatcher) cd(ctx context.Context, inv *Invocation) Result {
	if res, denied := checkAccess(inv.User, true); denied {
		return res
	}

	args := Parse(inv.Raw)
	directory := args.Positional(1)
	if directory == "" {
		directory = "/"
	}
	target := Resolve(inv.PWD, directory)

	folder, err := d.ns.Stat(ctx, inv.User.ID, target)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(http.StatusNotFound, ActionError{
			Message: fmt.Sprintf("cd: '%s': No such file or directory", target),
			Code:    http.StatusNotFound,
		})
	}
	if err != nil {
		return d.internalFault("cd", err)
	}

	return ok(Payload{Content: "", PWD: folder.Path})
}
