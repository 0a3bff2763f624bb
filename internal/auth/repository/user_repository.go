package repository

import (
	"context"
	"database/sql"
	"fmt"

	"grillhouse/internal/domain"
	apperrors "grillhouse/internal/errors"
)

type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password, role, created_at
		FROM users
		WHERE username = ?`, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %q not found", username))
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying user by username", err)
	}

	return &user, nil
}
