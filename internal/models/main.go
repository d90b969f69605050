// Package models defines the core data structures for users, the per-user
// namespace tree of folders and phews, and sessions.
package models

import (
	"database/sql"
	"time"
)

// UserRole identifies the authorization level of an identity.
type UserRole string

const (
	// RoleStem is the anonymous default identity used when no session is
	// present. A stem user owns no namespace and cannot mutate anything.
	RoleStem UserRole = "STEM"
	// RoleUser is a registered user with its own namespace tree.
	RoleUser UserRole = "USER"
)

// DefaultUserName is the display name of the anonymous identity.
const DefaultUserName = "stem"

// User represents a registered application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Name is the login name chosen by the user.
	Name string
	// Email is the address the verification mail is sent to.
	Email string
	// Password is the hex-encoded PBKDF2 hash of the user's password.
	Password string
	// Salt is the hex-encoded salt the hash was derived with.
	Salt string
	// Role is the authorization level of the user.
	Role UserRole
	// IsVerified reports whether the email confirmation flow completed.
	IsVerified bool
	// CreatedAt is the signup timestamp.
	CreatedAt time.Time
}

// ShareableUser is the client-safe view of a user; it never carries
// credential material and is what handlers and the wire contract see.
type ShareableUser struct {
	ID         string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Shareable strips credential material from a user record.
func (u *User) Shareable() ShareableUser {
	return ShareableUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// DefaultUser returns the anonymous identity resolved for requests that
// carry no (or an expired) session.
func DefaultUser() ShareableUser {
	return ShareableUser{
		ID:    DefaultUserName,
		Name:  DefaultUserName,
		Email: "em@il.phew",
		Role:  RoleStem,
	}
}

// Folder is a directory node in a user's namespace tree. Paths are stored
// absolute and are unique per user across folders and phews.
type Folder struct {
	// ID is the unique identifier of the folder.
	ID string
	// UserID is the owning user.
	UserID string
	// Path is the absolute path of the folder, e.g. "/source".
	Path string
	// ParentID references the parent folder; invalid only for the root "/".
	ParentID sql.NullString
	// Readonly and Private drive the displayed permission string only.
	Readonly bool
	Private  bool
	// UpdatedAt is bumped by the recursive ancestor touch.
	UpdatedAt time.Time
}

// Phew is a password-protected leaf under a folder.
type Phew struct {
	// ID is the unique identifier of the phew.
	ID string
	// UserID is the owning user.
	UserID string
	// ParentID references the folder the phew lives under.
	ParentID string
	// Path is the absolute path of the phew, sharing the folder namespace.
	Path string
	// Password is the hex-encoded PBKDF2 hash of the phew secret.
	Password string
	// Salt is the hex-encoded salt the hash was derived with.
	Salt string
	// Readonly and Private drive the displayed permission string only.
	Readonly bool
	Private  bool
	// UpdatedAt is refreshed whenever the phew is touched.
	UpdatedAt time.Time
}

// Node is a child descriptor returned by directory listings.
type Node struct {
	// Path is the absolute path of the child.
	Path string
	// IsDir is true for folders, false for phews.
	IsDir bool
	// Readonly and Private drive the displayed permission string.
	Readonly bool
	Private  bool
	// UpdatedAt orders listings, most recently modified first.
	UpdatedAt time.Time
}

// Permissions renders the display-only permission string: the write bit
// reflects !Readonly and the trailing read bit reflects !Private.
func (n Node) Permissions() string {
	perms := "r"
	if n.Readonly {
		perms += "-"
	} else {
		perms += "w"
	}
	perms += "-"
	if n.Private {
		perms += "-"
	} else {
		perms += "r"
	}
	return perms + "-"
}

// Session maps an opaque client token to a user id.
type Session struct {
	// Token is the opaque identifier stored in the client cookie.
	Token string
	// UserID is the user the session authenticates.
	UserID string
	// CreatedAt is when the session was issued.
	CreatedAt time.Time
	// ExpiresAt bounds the session lifetime.
	ExpiresAt time.Time
}
