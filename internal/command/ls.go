package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/repository"
)

// ls lists the children of one or more target directories. Each missing
// target turns into an inline [404] line instead of failing the batch.
func (d *Dispatcher) ls(ctx context.Context, inv *Invocation) Result {
	if res, denied := checkAccess(inv.User, true); denied {
		return res
	}

	args := Parse(inv.Raw, Option{Name: "files", Aliases: []string{"f", "path"}, Array: true})
	files := append(args.Array("files"), args.Operands()...)
	if len(files) == 0 {
		files = []string{"./"}
	}
	for _, file := range files {
		if file == "" {
			return fail(http.StatusBadRequest, ActionError{Message: "Invalid Input", Code: http.StatusBadRequest})
		}
	}

	targets := resolveUnique(inv.PWD, files)

	type listing struct {
		children []models.Node
		err      error
	}
	listings := make([]listing, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			children, err := d.ns.List(ctx, inv.User.ID, target)
			listings[i] = listing{children: children, err: err}
		}(i, target)
	}
	wg.Wait()

	blocks := make([]string, 0, len(targets))
	for i, target := range targets {
		if errors.Is(listings[i].err, repository.ErrNotFound) {
			blocks = append(blocks, fmt.Sprintf("[404] cannot access '%s': No such file or directory", target))
			continue
		}
		if listings[i].err != nil {
			return d.internalFault("ls", listings[i].err)
		}
		blocks = append(blocks, formatListing(target, listings[i].children))
	}

	return ok(Payload{Content: strings.Join(blocks, "\n")})
}

// formatListing renders one directory block: a header with the entry count,
// an underscore rule, then one line per child with its kind marker, base
// name padded to the longest sibling, permissions, and modification date.
func formatListing(target string, children []models.Node) string {
	longest := 0
	for _, child := range children {
		if len(child.Path) > longest {
			longest = len(child.Path)
		}
	}

	lines := make([]string, 0, len(children))
	for _, child := range children {
		marker := "▪"
		if child.IsDir {
			marker = "□"
		}
		lines = append(lines, fmt.Sprintf(" %s  %s %s %s    %s",
			marker,
			path.Base(child.Path),
			lineOfLength(longest-len(child.Path)+2, " "),
			child.Permissions(),
			child.UpdatedAt.Format("1/2/2006"),
		))
	}

	return fmt.Sprintf("      %s:      total: %s\n    %s\n%s",
		target,
		fixedDigits(len(children), 2),
		lineOfLength(len(target)+5, "_"),
		strings.Join(lines, "\n"),
	)
}

// resolveUnique resolves each file against pwd and drops duplicate
// resolutions, keeping first-seen order.
func resolveUnique(pwd string, files []string) []string {
	seen := make(map[string]bool, len(files))
	targets := make([]string, 0, len(files))
	for _, file := range files {
		target := Resolve(pwd, file)
		if !seen[target] {
			seen[target] = true
			targets = append(targets, target)
		}
	}
	return targets
}
