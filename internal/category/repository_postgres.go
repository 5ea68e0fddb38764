package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	listCategoriesQuery = `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name
	`
	getCategoryByIDQuery = `
		SELECT id, name, description, created_at
		FROM categories
		WHERE id = $1
	`
	insertCategoryQuery = `
		INSERT INTO categories (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`

	foreignKeyViolation = "23503"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, getCategoryByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c Category) (Category, error) {
	if err := r.db.QueryRowContext(ctx, insertCategoryQuery, c.Name, c.Description, c.CreatedAt).Scan(&c.ID); err != nil {
		return Category{}, fmt.Errorf("failed to insert category: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, deleteCategoryQuery, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrHasProducts
		}
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(scanner rowScanner) (Category, error) {
	var (
		c    Category
		desc sql.NullString
	)
	if err := scanner.Scan(&c.ID, &c.Name, &desc, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	c.Description = desc.String
	return c, nil
}
