package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/mind0bender/phew/internal/repository"
	"github.com/mind0bender/phew/internal/validate"
)

// mkdir creates one or more folders. Per-target conflicts and missing
// parents become inline [409]/[404] lines; the batch itself succeeds.
func (d *Dispatcher) mkdir(ctx context.Context, inv *Invocation) Result {
	if res, denied := checkAccess(inv.User, true); denied {
		return res
	}

	args := Parse(inv.Raw, Option{Name: "directories", Aliases: []string{"d", "path"}, Array: true})
	directories := append(args.Array("directories"), args.Operands()...)
	if len(directories) == 0 {
		return fail(http.StatusBadRequest, ActionError{Message: "missing operand", Code: http.StatusBadRequest})
	}
	for _, directory := range directories {
		if err := validate.DirectoryName(directory); err != nil {
			return fail(http.StatusBadRequest, ActionError{Message: err.Error(), Code: http.StatusBadRequest})
		}
	}

	targets := resolveUnique(inv.PWD, directories)

	outcomes := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			outcomes[i] = d.ns.CreateFolder(ctx, inv.User.ID, target)
		}(i, target)
	}
	wg.Wait()

	lines := make([]string, 0, len(targets))
	for i, target := range targets {
		switch {
		case errors.Is(outcomes[i], repository.ErrNotFound):
			lines = append(lines, fmt.Sprintf("[404] cannot create directory '%s': No such file or directory", target))
		case errors.Is(outcomes[i], repository.ErrConflict):
			lines = append(lines, fmt.Sprintf("[409] cannot create directory '%s': File exists", target))
		case outcomes[i] != nil:
			return d.internalFault("mkdir", outcomes[i])
		default:
			lines = append(lines, fmt.Sprintf("directory '%s': creation successful", target))
		}
	}

	return ok(Payload{Content: strings.Join(lines, "\n")})
}
