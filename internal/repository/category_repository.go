package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	Upsert(ctx context.Context, category *domain.Category) error
}

type categoryRepository struct {
	db sqlx.ExtContext
}

func NewCategoryRepository(db sqlx.ExtContext) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := sqlx.SelectContext(ctx, r.db, &categories, `SELECT * FROM categories ORDER BY name ASC`)
	return categories, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return getOne[domain.Category](ctx, r.db, `SELECT * FROM categories WHERE id = $1`, id)
}

func (r *categoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id)
	return exists, err
}

func (r *categoryRepository) Upsert(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, description, image_url, price_range, rating, subcategories, tags, vendor_count)
		VALUES (:id, :name, :description, :image_url, :price_range, :rating, :subcategories, :tags, :vendor_count)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			price_range = EXCLUDED.price_range,
			rating = EXCLUDED.rating,
			subcategories = EXCLUDED.subcategories,
			tags = EXCLUDED.tags,
			vendor_count = EXCLUDED.vendor_count,
			updated_at = NOW()`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, category)
	return err
}
