package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectProducts = `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.image_url,
		       p.category_id, c.name, p.created_at, p.is_active
		FROM products p
		JOIN categories c ON c.id = p.category_id
	`
	listActiveProductsQuery   = selectProducts + ` WHERE p.is_active ORDER BY p.name`
	listProductsQuery         = selectProducts + ` ORDER BY p.id`
	getActiveProductQuery     = selectProducts + ` WHERE p.id = $1 AND p.is_active`
	listFeaturedProductsQuery = selectProducts + ` WHERE p.is_active ORDER BY p.created_at DESC LIMIT $1`
	listActiveByIDsQuery      = selectProducts + ` WHERE p.is_active AND p.id = ANY($1::int[]) ORDER BY p.name`

	insertProductQuery = `
		INSERT INTO products (name, description, price, stock, image_url, category_id, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			stock = $4,
			image_url = $5,
			category_id = $6,
			is_active = $7
		WHERE id = $8
		RETURNING created_at
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`

	foreignKeyViolation = "23503"
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]Product, error) {
	return r.query(ctx, listActiveProductsQuery)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, listProductsQuery)
}

func (r *PostgresRepository) GetActiveByID(ctx context.Context, id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getActiveProductQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) ListFeatured(ctx context.Context, limit int) ([]Product, error) {
	return r.query(ctx, listFeaturedProductsQuery, limit)
}

// Search builds the WHERE clause from the filter. The query text is matched
// with ILIKE against name or description.
func (r *PostgresRepository) Search(ctx context.Context, f Filter) ([]Product, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(selectProducts)
	sb.WriteString(` WHERE p.is_active`)
	if f.Query != "" {
		args = append(args, likePattern(f.Query))
		fmt.Fprintf(&sb, ` AND (p.name ILIKE $%d OR p.description ILIKE $%d)`, len(args), len(args))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		fmt.Fprintf(&sb, ` AND p.category_id = $%d`, len(args))
	}
	sb.WriteString(` ORDER BY p.name`)
	return r.query(ctx, sb.String(), args...)
}

func (r *PostgresRepository) ListActiveByIDs(ctx context.Context, ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return r.query(ctx, listActiveByIDsQuery, pq.Array(ids))
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, insertProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.ImageURL,
		p.CategoryID,
		p.CreatedAt,
		p.IsActive,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Product{}, ErrUnknownCategory
		}
		return Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

// Update overwrites every mutable column. A missing row is reported as
// ErrUpdateConflict.
func (r *PostgresRepository) Update(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, updateProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.ImageURL,
		p.CategoryID,
		p.IsActive,
		p.ID,
	).Scan(&p.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Product{}, ErrUpdateConflict
	case isForeignKeyViolation(err):
		return Product{}, ErrUnknownCategory
	case err != nil:
		return Product{}, fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, ErrInUse
		}
		return false, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresRepository) query(ctx context.Context, q string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var image sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&image,
		&p.CategoryID,
		&p.CategoryName,
		&p.CreatedAt,
		&p.IsActive,
	); err != nil {
		return Product{}, err
	}
	p.ImageURL = image.String
	return p, nil
}

// likePattern wraps q for a substring match, escaping LIKE metacharacters.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
