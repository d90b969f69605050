package command

import (
	"net/http"

	"github.com/mind0bender/phew/internal/models"
)

// LoginRequiredMsg is returned whenever the anonymous identity reaches a
// gated command.
const LoginRequiredMsg = `Unauthorized user identification.
Feature access restricted.
login required!`

// UnverifiedMsg is returned when an authenticated but unverified identity
// reaches a command that requires verification.
const UnverifiedMsg = `Unverified user identification.
Feature access restricted.
verify your email to continue!`

// checkAccess evaluates the identity against a command's requirements:
// every gated command needs an authenticated identity, and namespace
// mutating commands additionally need a verified one. It returns the
// denial result and true when access is denied.
func checkAccess(user models.ShareableUser, needsVerified bool) (Result, bool) {
	if user.Role == models.RoleStem {
		return fail(http.StatusUnauthorized, ActionError{
			Message: LoginRequiredMsg,
			Code:    http.StatusUnauthorized,
		}), true
	}
	if needsVerified && !user.IsVerified {
		return fail(http.StatusForbidden, ActionError{
			Message: UnverifiedMsg,
			Code:    http.StatusForbidden,
		}), true
	}
	return Result{}, false
}
