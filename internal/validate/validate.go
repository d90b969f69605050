// Package validate holds the input bounds shared by the command layer and
// the auth endpoints, so both legs of a continuation validate identically.
package validate

import (
	"fmt"
	"net/mail"
)

// Directory name and secret bounds mirror the command grammar.
const (
	UserNameMin = 3
	UserNameMax = 30
	PasswordMin = 8
	PasswordMax = 30
	DirNameMax  = 16
	PhewPswdMax = 30
)

// UserName checks signup/login user names.
func UserName(name string) error {
	if len(name) < UserNameMin {
		return fmt.Errorf("name must be at least %d characters", UserNameMin)
	}
	if len(name) > UserNameMax {
		return fmt.Errorf("name must be at most %d characters", UserNameMax)
	}
	return nil
}

// Email checks the address the verification mail goes to.
func Email(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// Password checks account passwords.
func Password(password string) error {
	if len(password) < PasswordMin {
		return fmt.Errorf("password must be at least %d characters", PasswordMin)
	}
	if len(password) > PasswordMax {
		return fmt.Errorf("password must be at most %d characters", PasswordMax)
	}
	return nil
}

// DirectoryName checks a single mkdir operand.
func DirectoryName(name string) error {
	if len(name) < 1 {
		return fmt.Errorf("directory must be at least 1 characters")
	}
	if len(name) > DirNameMax {
		return fmt.Errorf("directory must be at most %d characters", DirNameMax)
	}
	return nil
}

// PhewPassword checks the optional touch secret.
func PhewPassword(password string) error {
	if len(password) > PhewPswdMax {
		return fmt.Errorf("password must be at most %d characters", PhewPswdMax)
	}
	return nil
}

// Filename checks the touch operand.
func Filename(name string) error {
	if len(name) < 1 {
		return fmt.Errorf("filename must be atleast 1 characters")
	}
	return nil
}
