package repositories

import (
	"context"
	"errors"

	"navhub/internal/apperrors"
	"navhub/internal/models"

	"github.com/jackc/pgx/v5"
)

// MenuRepository persists top-level navigation menus. Listings are ordered
// by (sort_order, id) ascending; the projector depends on that order.
type MenuRepository interface {
	Insert(ctx context.Context, menu *models.Menu) error
	Update(ctx context.Context, menu *models.Menu) error
	GetByID(ctx context.Context, id int64) (*models.Menu, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Menu, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Reorder(ctx context.Context, orderedIDs []int64) error
}

type menuRepo struct {
	db Database
}

func NewMenuRepo(db Database) MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) Insert(ctx context.Context, menu *models.Menu) error {
	query := `
		INSERT INTO menus (title, icon, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, menu.Title, menu.Icon, menu.SortOrder, menu.IsActive).
		Scan(&menu.ID, &menu.CreatedAt)
}

func (r *menuRepo) Update(ctx context.Context, menu *models.Menu) error {
	query := `
		UPDATE menus
		SET title = $1, icon = $2, sort_order = $3, is_active = $4
		WHERE id = $5
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, menu.Title, menu.Icon, menu.SortOrder, menu.IsActive, menu.ID).
		Scan(&menu.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return err
}

func (r *menuRepo) GetByID(ctx context.Context, id int64) (*models.Menu, error) {
	menu := &models.Menu{}
	query := `
		SELECT id, title, icon, sort_order, is_active, created_at
		FROM menus
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&menu.ID, &menu.Title, &menu.Icon, &menu.SortOrder, &menu.IsActive, &menu.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *menuRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM menus WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *menuRepo) List(ctx context.Context) ([]models.Menu, error) {
	query := `
		SELECT id, title, icon, sort_order, is_active, created_at
		FROM menus
		ORDER BY sort_order ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []models.Menu
	for rows.Next() {
		var menu models.Menu
		if err := rows.Scan(&menu.ID, &menu.Title, &menu.Icon, &menu.SortOrder, &menu.IsActive, &menu.CreatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

func (r *menuRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE menus SET is_active = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Reorder rewrites sort_order to the position of each id in orderedIDs.
// A single statement keeps the rewrite atomic.
func (r *menuRepo) Reorder(ctx context.Context, orderedIDs []int64) error {
	query := `
		UPDATE menus AS m
		SET sort_order = v.ord
		FROM (
			SELECT unnest($1::bigint[]) AS id,
			       generate_subscripts($1::bigint[], 1) AS ord
		) AS v
		WHERE m.id = v.id
	`
	_, err := r.db.Exec(ctx, query, orderedIDs)
	return err
}
