package repositories

import (
	"context"
	"time"

	"tovio-backoffice/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.MenuItem, error)
}

type menuRepo struct {
	db Database
}

func NewMenuRepo(db Database) MenuRepository {
	return &menuRepo{db: db}
}

const menuColumns = `id, name, price, category, image_url, is_available, ingredients, instructions, presentation, shelf_life, packaging, is_gluten_free, is_sugar_free, created_at, updated_at`

func (r *menuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, price, category, image_url, is_available, ingredients, instructions, presentation, shelf_life, packaging, is_gluten_free, is_sugar_free, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Name, item.Price, item.Category, item.ImageURL, item.IsAvailable, item.Ingredients, item.Instructions, item.Presentation, item.ShelfLife, item.Packaging, item.IsGlutenFree, item.IsSugarFree)
	return err
}

func (r *menuRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE id = $1
	`
	return scanMenuItem(r.db.QueryRow(ctx, query, id))
}

func (r *menuRepo) Update(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, price = $2, category = $3, image_url = $4, is_available = $5, ingredients = $6, instructions = $7, presentation = $8, shelf_life = $9, packaging = $10, is_gluten_free = $11, is_sugar_free = $12, updated_at = NOW()
		WHERE id = $13
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Price, item.Category, item.ImageURL, item.IsAvailable, item.Ingredients, item.Instructions, item.Presentation, item.ShelfLife, item.Packaging, item.IsGlutenFree, item.IsSugarFree, item.ID)
	return err
}

func (r *menuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *menuRepo) List(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanMenuItem decodes one row, defaulting nullable columns in one place so
// records written with older field sets still read back as complete items.
func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var (
		category     *string
		isAvailable  *bool
		ingredients  *string
		instructions *string
		presentation *string
		shelfLife    *string
		isGlutenFree *bool
		isSugarFree  *bool
		createdAt    *time.Time
		updatedAt    *time.Time
	)
	err := row.Scan(&item.ID, &item.Name, &item.Price, &category, &item.ImageURL, &isAvailable, &ingredients, &instructions, &presentation, &shelfLife, &item.Packaging, &isGlutenFree, &isSugarFree, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	item.Category = defaultString(category)
	item.IsAvailable = defaultBool(isAvailable)
	item.Ingredients = defaultString(ingredients)
	item.Instructions = defaultString(instructions)
	item.Presentation = defaultString(presentation)
	item.ShelfLife = defaultString(shelfLife)
	item.IsGlutenFree = defaultBool(isGlutenFree)
	item.IsSugarFree = defaultBool(isSugarFree)
	item.CreatedAt = defaultTime(createdAt)
	item.UpdatedAt = defaultTime(updatedAt)
	return item, nil
}

func defaultString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func defaultBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

func defaultFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func defaultTime(t *time.Time) time.Time {
	if t == nil {
		return time.Now()
	}
	return *t
}
