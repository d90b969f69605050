package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mind0bender/phew/internal/models"
)

// PostgresNamespaceRepository implements the per-user folder/phew tree
// against PostgreSQL. The tree is an arena of rows keyed by stable ids with
// parent pointers; ancestor walks and subtree enumeration are index-driven
// iterative queries, never recursive pointer chasing.
type PostgresNamespaceRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresNamespaceRepository creates a new PostgresNamespaceRepository
// using the provided *sql.DB.
func NewPostgresNamespaceRepository(db *sql.DB) *PostgresNamespaceRepository {
	return &PostgresNamespaceRepository{DB: db}
}

const folderColumns = `folder_id, user_id, path, parent_folder_id, readonly, private, updated_at`

func scanFolder(row *sql.Row) (*models.Folder, error) {
	var f models.Folder
	err := row.Scan(&f.ID, &f.UserID, &f.Path, &f.ParentID, &f.Readonly, &f.Private, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	return &f, nil
}

// FolderByPath fetches the folder at the exact absolute path for the user.
func (r *PostgresNamespaceRepository) FolderByPath(ctx context.Context, userID, path string) (*models.Folder, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+folderColumns+` FROM folders WHERE user_id = $1 AND path = $2
	`, userID, path)
	return scanFolder(row)
}

// PhewByPath fetches the phew at the exact absolute path for the user.
func (r *PostgresNamespaceRepository) PhewByPath(ctx context.Context, userID, path string) (*models.Phew, error) {
	var p models.Phew
	err := r.DB.QueryRowContext(ctx, `
		SELECT phew_id, user_id, parent_folder_id, path, password, salt, readonly, private, updated_at
		  FROM phews WHERE user_id = $1 AND path = $2
	`, userID, path).Scan(&p.ID, &p.UserID, &p.ParentID, &p.Path, &p.Password, &p.Salt, &p.Readonly, &p.Private, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan phew: %w", err)
	}
	return &p, nil
}

// Children lists the folder and phew children of a folder, most recently
// modified first.
func (r *PostgresNamespaceRepository) Children(ctx context.Context, folderID string) ([]models.Node, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT path, TRUE AS is_dir, readonly, private, updated_at
		  FROM folders WHERE parent_folder_id = $1
		UNION ALL
		SELECT path, FALSE AS is_dir, readonly, private, updated_at
		  FROM phews WHERE parent_folder_id = $1
		ORDER BY updated_at DESC
	`, folderID)
	if err != nil {
		return nil, fmt.Errorf("Children: %w", err)
	}
	defer rows.Close()

	var children []models.Node
	for rows.Next() {
		var n models.Node
		if err := rows.Scan(&n.Path, &n.IsDir, &n.Readonly, &n.Private, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		children = append(children, n)
	}
	return children, rows.Err()
}

// CreateRoot inserts the root folder "/" for a freshly signed-up user.
func (r *PostgresNamespaceRepository) CreateRoot(ctx context.Context, userID string) (*models.Folder, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO folders (folder_id, user_id, path)
		VALUES ($1, $2, '/')
		RETURNING `+folderColumns,
		uuid.NewString(), userID,
	)
	folder, err := scanFolder(row)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	return folder, err
}

// CreateFolder inserts a folder at path under the given parent. A concurrent
// create against the same path loses the race as ErrConflict.
func (r *PostgresNamespaceRepository) CreateFolder(ctx context.Context, userID, parentID, path string) (*models.Folder, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO folders (folder_id, user_id, path, parent_folder_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+folderColumns,
		uuid.NewString(), userID, path, parentID,
	)
	folder, err := scanFolder(row)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	return folder, err
}

// CreatePhew inserts a phew at path under the given parent folder with the
// hashed secret.
func (r *PostgresNamespaceRepository) CreatePhew(ctx context.Context, userID, parentID, path, hash, salt string) (*models.Phew, error) {
	var p models.Phew
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO phews (phew_id, user_id, parent_folder_id, path, password, salt)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING phew_id, user_id, parent_folder_id, path, password, salt, readonly, private, updated_at
	`, uuid.NewString(), userID, parentID, path, hash, salt,
	).Scan(&p.ID, &p.UserID, &p.ParentID, &p.Path, &p.Password, &p.Salt, &p.Readonly, &p.Private, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("CreatePhew: %w", err)
	}
	return &p, nil
}

// TouchPhew refreshes a phew's timestamp without rewriting its secret and
// returns the parent folder id so the caller can touch the ancestors.
func (r *PostgresNamespaceRepository) TouchPhew(ctx context.Context, phewID string) (string, error) {
	var parentID string
	err := r.DB.QueryRowContext(ctx, `
		UPDATE phews SET updated_at = now() WHERE phew_id = $1
		RETURNING parent_folder_id
	`, phewID).Scan(&parentID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("TouchPhew: %w", err)
	}
	return parentID, nil
}

// TouchAncestors walks the parent chain from the given folder to the root
// inclusive, setting each visited folder's timestamp to now. The walk runs
// in one transaction so a mid-walk failure cannot leave the chain partially
// touched. Timestamps only ever move forward.
func (r *PostgresNamespaceRepository) TouchAncestors(ctx context.Context, folderID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current := sql.NullString{String: folderID, Valid: folderID != ""}
	for current.Valid {
		var parent sql.NullString
		err := tx.QueryRowContext(ctx, `
			UPDATE folders SET updated_at = now() WHERE folder_id = $1
			RETURNING parent_folder_id
		`, current.String).Scan(&parent)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("touch folder: %w", err)
		}
		// the root has no parent, which terminates the walk
		current = parent
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeleteSubtree deletes the folder and every descendant folder and phew.
// It collects folder ids breadth-first level by level, then deletes levels
// deepest first, so no delete ever orphans a child; the storage layer does
// not cascade. The whole traversal runs in one transaction.
func (r *PostgresNamespaceRepository) DeleteSubtree(ctx context.Context, folderID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	levels := [][]string{{folderID}}
	lastLevel := []string{folderID}
	for len(lastLevel) > 0 {
		rows, err := tx.QueryContext(ctx, `
			SELECT folder_id FROM folders WHERE parent_folder_id = ANY($1)
		`, pq.Array(lastLevel))
		if err != nil {
			return fmt.Errorf("collect level: %w", err)
		}
		var level []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("scan: %w", err)
			}
			level = append(level, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("collect level: %w", err)
		}
		if len(level) > 0 {
			levels = append(levels, level)
		}
		lastLevel = level
	}

	for i := len(levels) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM phews WHERE parent_folder_id = ANY($1)
		`, pq.Array(levels[i])); err != nil {
			return fmt.Errorf("delete phews: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM folders WHERE folder_id = ANY($1)
		`, pq.Array(levels[i])); err != nil {
			return fmt.Errorf("delete folders: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
