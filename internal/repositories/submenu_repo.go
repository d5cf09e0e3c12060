package repositories

import (
	"context"
	"errors"

	"navhub/internal/apperrors"
	"navhub/internal/models"

	"github.com/jackc/pgx/v5"
)

// SubmenuRepository persists submenu entries. Listings are ordered by
// (sort_order, id) ascending within their parent menu.
type SubmenuRepository interface {
	Insert(ctx context.Context, submenu *models.Submenu) error
	Update(ctx context.Context, submenu *models.Submenu) error
	GetByID(ctx context.Context, id int64) (*models.Submenu, error)
	ListByMenu(ctx context.Context, menuID int64) ([]models.Submenu, error)
	ListAll(ctx context.Context) ([]models.Submenu, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Reorder(ctx context.Context, menuID int64, orderedIDs []int64) error
}

type submenuRepo struct {
	db Database
}

func NewSubmenuRepo(db Database) SubmenuRepository {
	return &submenuRepo{db: db}
}

func (r *submenuRepo) Insert(ctx context.Context, submenu *models.Submenu) error {
	query := `
		INSERT INTO submenus (menu_id, title, endpoint, url, icon, sort_order, is_active, permission_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		submenu.MenuID,
		submenu.Title,
		submenu.Endpoint,
		submenu.URL,
		submenu.Icon,
		submenu.SortOrder,
		submenu.IsActive,
		submenu.PermissionCode,
	).Scan(&submenu.ID, &submenu.CreatedAt)
}

func (r *submenuRepo) Update(ctx context.Context, submenu *models.Submenu) error {
	query := `
		UPDATE submenus
		SET menu_id = $1, title = $2, endpoint = $3, url = $4, icon = $5, sort_order = $6, is_active = $7, permission_code = $8
		WHERE id = $9
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		submenu.MenuID,
		submenu.Title,
		submenu.Endpoint,
		submenu.URL,
		submenu.Icon,
		submenu.SortOrder,
		submenu.IsActive,
		submenu.PermissionCode,
		submenu.ID,
	).Scan(&submenu.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return err
}

func (r *submenuRepo) GetByID(ctx context.Context, id int64) (*models.Submenu, error) {
	submenu := &models.Submenu{}
	query := `
		SELECT id, menu_id, title, endpoint, url, icon, sort_order, is_active, permission_code, created_at
		FROM submenus
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&submenu.ID,
		&submenu.MenuID,
		&submenu.Title,
		&submenu.Endpoint,
		&submenu.URL,
		&submenu.Icon,
		&submenu.SortOrder,
		&submenu.IsActive,
		&submenu.PermissionCode,
		&submenu.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return submenu, nil
}

func (r *submenuRepo) ListByMenu(ctx context.Context, menuID int64) ([]models.Submenu, error) {
	query := `
		SELECT id, menu_id, title, endpoint, url, icon, sort_order, is_active, permission_code, created_at
		FROM submenus
		WHERE menu_id = $1
		ORDER BY sort_order ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmenus(rows)
}

// ListAll returns every submenu grouped by menu in listing order, for
// snapshot capture and registry export.
func (r *submenuRepo) ListAll(ctx context.Context) ([]models.Submenu, error) {
	query := `
		SELECT id, menu_id, title, endpoint, url, icon, sort_order, is_active, permission_code, created_at
		FROM submenus
		ORDER BY menu_id ASC, sort_order ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmenus(rows)
}

func (r *submenuRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE submenus SET is_active = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Reorder rewrites sort_order to the position of each id in orderedIDs,
// constrained to the given menu so ids cannot be moved across parents.
func (r *submenuRepo) Reorder(ctx context.Context, menuID int64, orderedIDs []int64) error {
	query := `
		UPDATE submenus AS s
		SET sort_order = v.ord
		FROM (
			SELECT unnest($1::bigint[]) AS id,
			       generate_subscripts($1::bigint[], 1) AS ord
		) AS v
		WHERE s.id = v.id AND s.menu_id = $2
	`
	_, err := r.db.Exec(ctx, query, orderedIDs, menuID)
	return err
}

func scanSubmenus(rows pgx.Rows) ([]models.Submenu, error) {
	var submenus []models.Submenu
	for rows.Next() {
		var submenu models.Submenu
		if err := rows.Scan(
			&submenu.ID,
			&submenu.MenuID,
			&submenu.Title,
			&submenu.Endpoint,
			&submenu.URL,
			&submenu.Icon,
			&submenu.SortOrder,
			&submenu.IsActive,
			&submenu.PermissionCode,
			&submenu.CreatedAt,
		); err != nil {
			return nil, err
		}
		submenus = append(submenus, submenu)
	}
	return submenus, rows.Err()
}
