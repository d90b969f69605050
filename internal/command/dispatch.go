package command

import (
	"context"
	"fmt"

	"github.com/mind0bender/phew/internal/models"
	"go.uber.org/zap"
)

// NamespaceOps is what handlers need from the namespace service. Targets
// are canonical absolute paths produced by Resolve.
type NamespaceOps interface {
	// Stat returns the folder at target, or repository.ErrNotFound.
	Stat(ctx context.Context, userID, target string) (*models.Folder, error)
	// List returns the children of the folder at target, newest first.
	List(ctx context.Context, userID, target string) ([]models.Node, error)
	// CreateFolder creates a folder at target and touches its ancestors.
	CreateFolder(ctx context.Context, userID, target string) error
	// Touch creates or refreshes the node at target (folders win over
	// phews) and reports whether a new phew was created.
	Touch(ctx context.Context, userID, target, secret string) (bool, error)
}

// Invocation is the ephemeral per-request command context: the resolved
// identity, the client's current directory, and the raw command line.
// Handlers re-parse Raw with their own option table.
type Invocation struct {
	User models.ShareableUser
	PWD  string
	Raw  string
}

// HandlerFunc executes one command and composes its result.
type HandlerFunc func(ctx context.Context, inv *Invocation) Result

// Dispatcher routes parsed command lines to their handlers through a fixed
// verb table.
type Dispatcher struct {
	ns    NamespaceOps
	log   *zap.Logger
	table map[string]HandlerFunc
}

// NewDispatcher builds a Dispatcher over the namespace service.
func NewDispatcher(ns NamespaceOps, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{ns: ns, log: log}
	d.table = map[string]HandlerFunc{
		"help":   d.help,
		"clear":  d.clear,
		"whoami": d.whoami,
		"login":  d.login,
		"signup": d.signup,
		"logout": d.logout,
		"ls":     d.ls,
		"mkdir":  d.mkdir,
		"cd":     d.cd,
		"touch":  d.touch,
	}
	return d
}

// Dispatch executes the command line for the given identity. An empty line
// is a silent success; an unknown verb is a successful response explaining
// itself, not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, user models.ShareableUser, pwd, raw string) Result {
	args := Parse(raw)
	verb := args.Verb()
	if verb == "" {
		return ok(Payload{Content: ""})
	}

	handler, found := d.table[verb]
	if !found {
		return ok(Payload{
			Content: fmt.Sprintf("%s: command not found\nTry: help", verb),
		})
	}
	return handler(ctx, &Invocation{User: user, PWD: pwd, Raw: raw})
}

// internalFault logs the collaborator failure and genericizes it.
func (d *Dispatcher) internalFault(verb string, err error) Result {
	d.log.Error("command failed", zap.String("verb", verb), zap.Error(err))
	return ErrInternal()
}
