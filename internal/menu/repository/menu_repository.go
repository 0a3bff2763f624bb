package repository

import (
	"context"
	"database/sql"
	"fmt"

	"grillhouse/internal/domain"
	apperrors "grillhouse/internal/errors"
)

type SQLiteMenuRepository struct {
	db *sql.DB
}

func NewSQLiteMenuRepository(db *sql.DB) *SQLiteMenuRepository {
	return &SQLiteMenuRepository{db: db}
}

func (r *SQLiteMenuRepository) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category, image_url, available, created_at
		FROM menu_items`
	var args []any
	var conds []string

	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Available != nil {
		conds = append(conds, "available = ?")
		args = append(args, *filter.Available)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying menu items", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.ImageURL, &item.Available, &item.CreatedAt)
		if err != nil {
			return nil, apperrors.NewPersistenceError("scanning menu item row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("iterating menu item rows", err)
	}

	return items, nil
}

func (r *SQLiteMenuRepository) FindByID(ctx context.Context, id uint) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, category, image_url, available, created_at
		FROM menu_items
		WHERE id = ?`, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Category, &item.ImageURL, &item.Available, &item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying menu item by id", err)
	}

	return &item, nil
}

func (r *SQLiteMenuRepository) Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (name, description, price, category, image_url, available)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.Available,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("inserting menu item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, apperrors.NewPersistenceError("getting menu item id", err)
	}

	return r.FindByID(ctx, uint(id))
}

// Update applies a partial update; nil fields keep the stored value.
func (r *SQLiteMenuRepository) Update(ctx context.Context, id uint, patch domain.MenuPatch) (*domain.MenuItem, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET name = COALESCE(?, name),
		    description = COALESCE(?, description),
		    price = COALESCE(?, price),
		    category = COALESCE(?, category),
		    image_url = COALESCE(?, image_url),
		    available = COALESCE(?, available)
		WHERE id = ?`,
		patch.Name, patch.Description, patch.Price, patch.Category, patch.ImageURL, patch.Available, id,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("updating menu item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewPersistenceError("getting rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}

	return r.FindByID(ctx, id)
}

func (r *SQLiteMenuRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewPersistenceError("deleting menu item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistenceError("getting rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("menu item with id %d not found", id))
	}

	return nil
}
