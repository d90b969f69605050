package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/pswd"
	"github.com/mind0bender/phew/internal/repository"
)

// SessionTTL bounds how long an issued session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// verificationTTL bounds how long an emailed verification link works.
const verificationTTL = 24 * time.Hour

// Expected authentication outcomes.
var (
	// ErrNameTaken means the signup name belongs to another user.
	ErrNameTaken = errors.New("name taken")
	// ErrEmailTaken means the signup email belongs to another user.
	ErrEmailTaken = errors.New("email taken")
	// ErrWrongPassword means the credentials did not match.
	ErrWrongPassword = errors.New("wrong password")
)

// UserRepository defines the user persistence operations required by the
// auth service.
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, hash, salt string) (*models.User, error)
	UserByName(ctx context.Context, name string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	NameOrEmailTaken(ctx context.Context, name, email string) (bool, bool, error)
	SetVerified(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// SessionRepository defines the session persistence operations required by
// the auth service.
type SessionRepository interface {
	CreateSession(ctx context.Context, userID string, ttl time.Duration) (*models.Session, error)
	SessionUser(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// Mailer delivers the verification mail. Transport is an external concern;
// the service only hands over the addressee and token.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, token string) error
}

// Auth implements signup, login, logout, session resolution and the email
// verification flow.
type Auth struct {
	users     UserRepository
	sessions  SessionRepository
	namespace NamespaceRepository
	mailer    Mailer
	secret    []byte
}

// NewAuthService constructs an Auth service. secret signs verification
// tokens and must be non-empty.
func NewAuthService(users UserRepository, sessions SessionRepository, namespace NamespaceRepository, mailer Mailer, secret []byte) *Auth {
	return &Auth{
		users:     users,
		sessions:  sessions,
		namespace: namespace,
		mailer:    mailer,
		secret:    secret,
	}
}

// Signup registers a new user, provisions the root "/" and the "/source"
// starter folder, sends the verification mail, and issues a session.
func (a *Auth) Signup(ctx context.Context, name, email, password string) (*models.User, *models.Session, error) {
	nameTaken, emailTaken, err := a.users.NameOrEmailTaken(ctx, name, email)
	if err != nil {
		return nil, nil, err
	}
	if nameTaken {
		return nil, nil, ErrNameTaken
	}
	if emailTaken {
		return nil, nil, ErrEmailTaken
	}

	hashed, err := pswd.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := a.users.CreateUser(ctx, name, email, hashed.Hash, hashed.Salt)
	if errors.Is(err, repository.ErrConflict) {
		// lost a signup race on the unique index
		return nil, nil, ErrNameTaken
	}
	if err != nil {
		return nil, nil, err
	}

	root, err := a.namespace.CreateRoot(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := a.namespace.CreateFolder(ctx, user.ID, root.ID, "/source"); err != nil {
		return nil, nil, err
	}

	token, err := a.VerificationToken(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := a.mailer.SendVerification(ctx, user.Email, user.Name, token); err != nil {
		return nil, nil, fmt.Errorf("send verification mail: %w", err)
	}

	session, err := a.sessions.CreateSession(ctx, user.ID, SessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login checks the credentials and issues a session. An unknown name fails
// with repository.ErrNotFound and a bad password with ErrWrongPassword;
// re-running a successful login simply issues another session.
func (a *Auth) Login(ctx context.Context, name, password string) (*models.User, *models.Session, error) {
	user, err := a.users.UserByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	ok, err := pswd.Compare(password, user.Salt, user.Password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrWrongPassword
	}
	session, err := a.sessions.CreateSession(ctx, user.ID, SessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout drops the session row for the token.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.DeleteSession(ctx, token)
}

// Identify resolves a session token to the current identity. Missing,
// unknown, or expired tokens resolve to the anonymous default identity;
// only storage faults are reported as errors.
func (a *Auth) Identify(ctx context.Context, token string) (models.ShareableUser, error) {
	if token == "" {
		return models.DefaultUser(), nil
	}
	userID, err := a.sessions.SessionUser(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return models.DefaultUser(), nil
	}
	if err != nil {
		return models.DefaultUser(), err
	}
	user, err := a.users.UserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.DefaultUser(), nil
	}
	if err != nil {
		return models.DefaultUser(), err
	}
	return user.Shareable(), nil
}

// VerificationToken signs a short-lived token identifying the user for the
// email confirmation flow.
func (a *Auth) VerificationToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(verificationTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ResolveVerification validates a verification token and returns the user
// it addresses. Expired or malformed tokens return the jwt package errors.
func (a *Auth) ResolveVerification(ctx context.Context, token string) (*models.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return nil, err
	}
	return a.users.UserByID(ctx, subject)
}

// Verify marks the token's user as verified.
func (a *Auth) Verify(ctx context.Context, token string) (*models.User, error) {
	user, err := a.ResolveVerification(ctx, token)
	if err != nil {
		return nil, err
	}
	return a.users.SetVerified(ctx, user.ID)
}

// DeleteAccount removes the token's user along with their whole namespace:
// the root subtree is deleted bottom-up first, then the user row.
func (a *Auth) DeleteAccount(ctx context.Context, token string) error {
	user, err := a.ResolveVerification(ctx, token)
	if err != nil {
		return err
	}
	root, err := a.namespace.FolderByPath(ctx, user.ID, "/")
	if err != nil {
		return err
	}
	if err := a.namespace.DeleteSubtree(ctx, root.ID); err != nil {
		return err
	}
	return a.users.DeleteUser(ctx, user.ID)
}
