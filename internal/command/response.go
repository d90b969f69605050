// Package command implements the terminal command pipeline: parsing a raw
// command line, dispatching it to a handler, and composing the response
// envelope the client renders.
package command

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ActionError is one reported failure inside an error envelope.
type ActionError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Payload is the success half of the response envelope.
type Payload struct {
	// Content is the text the terminal prints.
	Content string `json:"content"`
	// Clear tells the client to wipe its scrollback before rendering.
	Clear bool `json:"clear,omitempty"`
	// PWD carries the new current directory after a successful cd.
	PWD string `json:"pwd,omitempty"`
	// FetchForm stages or completes a continuation (see Continuation).
	FetchForm *Continuation `json:"fetchForm,omitempty"`
	// UpdateUser tells the client to re-fetch its identity.
	UpdateUser bool `json:"updateUser,omitempty"`
	// Data carries structured payloads, e.g. the fields the client must
	// POST to complete a continuation.
	Data any `json:"data,omitempty"`
}

// Envelope is the wire shape every command and continuation endpoint
// returns.
type Envelope struct {
	Success bool          `json:"success"`
	Data    *Payload      `json:"data,omitempty"`
	Errors  []ActionError `json:"errors,omitempty"`
}

// Result pairs an envelope with its HTTP status and transport side effects.
type Result struct {
	Envelope Envelope
	Status   int
	// ClearSession asks the transport layer to drop the current session.
	ClearSession bool
}

// Continuation is the explicit state of the two-call command flow. A
// command that cannot complete in one round stages a continuation pointing
// at the endpoint the client must POST its data to; that endpoint's own
// responses carry the terminal marker. On the wire this is the legacy
// fetchForm field: a URL string while a second call is awaited, the literal
// true once a response is itself the second half.
type Continuation struct {
	url       string
	completed bool
}

// ContinueAt stages a continuation: the client must POST the envelope's
// data to url to complete the command.
func ContinueAt(url string) *Continuation {
	return &Continuation{url: url}
}

// Completed marks a response as the second half of a continuation.
func Completed() *Continuation {
	return &Continuation{completed: true}
}

// URL returns the follow-up endpoint, or "" once completed.
func (c *Continuation) URL() string { return c.url }

// IsCompleted reports whether this is the terminal state of the flow.
func (c *Continuation) IsCompleted() bool { return c.completed }

func (c *Continuation) MarshalJSON() ([]byte, error) {
	if c.completed {
		return json.Marshal(true)
	}
	return json.Marshal(c.url)
}

func (c *Continuation) UnmarshalJSON(data []byte) error {
	var completed bool
	if err := json.Unmarshal(data, &completed); err == nil {
		if !completed {
			return fmt.Errorf("fetchForm: false is not a continuation state")
		}
		*c = Continuation{completed: true}
		return nil
	}
	var url string
	if err := json.Unmarshal(data, &url); err != nil {
		return fmt.Errorf("fetchForm: %w", err)
	}
	*c = Continuation{url: url}
	return nil
}

// ok wraps a payload in a successful 200 result.
func ok(payload Payload) Result {
	return Result{
		Envelope: Envelope{Success: true, Data: &payload},
		Status:   http.StatusOK,
	}
}

// fail wraps one or more errors in an error result with the given status.
func fail(status int, errs ...ActionError) Result {
	return Result{
		Envelope: Envelope{Success: false, Errors: errs},
		Status:   status,
	}
}

// ErrInternal is the genericized internal fault envelope; details stay in
// the server log.
func ErrInternal() Result {
	return fail(http.StatusInternalServerError, ActionError{
		Message: "Internal Server Error",
		Code:    http.StatusInternalServerError,
	})
}
