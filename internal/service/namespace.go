// Package service provides the business logic for the namespace tree and
// authentication flows, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/mind0bender/phew/internal/models"
	"github.com/mind0bender/phew/internal/pswd"
	"github.com/mind0bender/phew/internal/repository"
)

// NamespaceRepository defines the persistence operations required by the
// namespace service.
type NamespaceRepository interface {
	// FolderByPath fetches the folder at the exact absolute path.
	FolderByPath(ctx context.Context, userID, path string) (*models.Folder, error)
	// PhewByPath fetches the phew at the exact absolute path.
	PhewByPath(ctx context.Context, userID, path string) (*models.Phew, error)
	// Children lists folder and phew children, most recently modified first.
	Children(ctx context.Context, folderID string) ([]models.Node, error)
	// CreateRoot inserts the root folder "/" for a user.
	CreateRoot(ctx context.Context, userID string) (*models.Folder, error)
	// CreateFolder inserts a folder under the given parent.
	CreateFolder(ctx context.Context, userID, parentID, path string) (*models.Folder, error)
	// CreatePhew inserts a phew with a hashed secret under the given parent.
	CreatePhew(ctx context.Context, userID, parentID, path, hash, salt string) (*models.Phew, error)
	// TouchPhew refreshes a phew timestamp and returns its parent folder id.
	TouchPhew(ctx context.Context, phewID string) (string, error)
	// TouchAncestors bumps timestamps from the folder up to the root.
	TouchAncestors(ctx context.Context, folderID string) error
	// DeleteSubtree removes a folder and all of its descendants.
	DeleteSubtree(ctx context.Context, folderID string) error
}

// Namespace implements the namespace operations behind the ls, mkdir, cd
// and touch commands. All paths it receives are canonical absolute paths.
type Namespace struct {
	repo NamespaceRepository
}

// NewNamespaceService constructs a Namespace using the provided repository.
func NewNamespaceService(repo NamespaceRepository) *Namespace {
	return &Namespace{repo: repo}
}

// Stat returns the folder at target, or repository.ErrNotFound.
func (s *Namespace) Stat(ctx context.Context, userID, target string) (*models.Folder, error) {
	return s.repo.FolderByPath(ctx, userID, target)
}

// List returns the children of the folder at target, most recently modified
// first. A target that is not an existing folder fails with
// repository.ErrNotFound.
func (s *Namespace) List(ctx context.Context, userID, target string) ([]models.Node, error) {
	dir, err := s.repo.FolderByPath(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	return s.repo.Children(ctx, dir.ID)
}

// CreateFolder creates a folder at target and touches its ancestors.
// A missing parent folder fails with repository.ErrNotFound; an occupied
// target (folder, phew, or the root itself) fails with
// repository.ErrConflict.
func (s *Namespace) CreateFolder(ctx context.Context, userID, target string) error {
	if target == "/" {
		return repository.ErrConflict
	}
	parent, err := s.repo.FolderByPath(ctx, userID, path.Dir(target))
	if err != nil {
		return err
	}

	// A phew may already hold the path; the folders unique index alone
	// cannot see it.
	if _, err := s.repo.PhewByPath(ctx, userID, target); err == nil {
		return repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if _, err := s.repo.CreateFolder(ctx, userID, parent.ID, target); err != nil {
		return err
	}
	return s.repo.TouchAncestors(ctx, parent.ID)
}

// Touch creates a phew at target with the hashed secret, or refreshes
// timestamps when the path is already taken. When a folder holds the path,
// the folder wins: only its timestamps are refreshed and no phew is created
// or updated. When a phew holds it, its timestamp is refreshed and the
// secret is left alone. It reports whether a new phew was created.
func (s *Namespace) Touch(ctx context.Context, userID, target, secret string) (bool, error) {
	parent, err := s.repo.FolderByPath(ctx, userID, path.Dir(target))
	if err != nil {
		return false, err
	}

	if folder, err := s.repo.FolderByPath(ctx, userID, target); err == nil {
		return false, s.repo.TouchAncestors(ctx, folder.ID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if existing, err := s.repo.PhewByPath(ctx, userID, target); err == nil {
		parentID, err := s.repo.TouchPhew(ctx, existing.ID)
		if err != nil {
			return false, err
		}
		return false, s.repo.TouchAncestors(ctx, parentID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hashed, err := pswd.Hash(secret)
	if err != nil {
		return false, fmt.Errorf("hash secret: %w", err)
	}
	if _, err := s.repo.CreatePhew(ctx, userID, parent.ID, target, hashed.Hash, hashed.Salt); err != nil {
		return false, err
	}
	return true, s.repo.TouchAncestors(ctx, parent.ID)
}
