// Package mail delivers the email verification message. Actual SMTP
// delivery is out of scope; LogMailer writes the verification link to the
// server log, which is enough for local and test deployments.
package mail

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// LogMailer renders the verification mail into the structured log instead
// of handing it to a delivery provider.
type LogMailer struct {
	baseURL string
	log     *zap.Logger
}

// NewLogMailer constructs a LogMailer. baseURL is the externally reachable
// origin the verification link is built against, e.g. "http://localhost:3000".
func NewLogMailer(baseURL string, log *zap.Logger) *LogMailer {
	return &LogMailer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}
}

// SendVerification logs the verification link for the given addressee.
func (m *LogMailer) SendVerification(_ context.Context, to, username, token string) error {
	link := fmt.Sprintf("%s/verifyme/%s", m.baseURL, token)
	m.log.Info("verification mail",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("link", link),
	)
	return nil
}
