package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (order_number, order_date, total_amount, customer_name, customer_email,
		                    shipping_address, status, payment_transaction_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	insertItemQuery = `
		INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	selectOrders = `
		SELECT id, order_number, order_date, total_amount, customer_name, customer_email,
		       shipping_address, status, payment_transaction_id, payment_date
		FROM orders
	`
	getOrderQuery   = selectOrders + ` WHERE id = $1`
	listOrdersQuery = selectOrders + ` WHERE id = ANY($1::int[]) ORDER BY array_position($1::int[], id)`
	selectItems     = `SELECT id, order_id, product_id, product_name, unit_price, quantity, total_price FROM order_items`
	getItemsQuery   = selectItems + ` WHERE order_id = $1 ORDER BY id`
	listItemsQuery  = selectItems + ` WHERE order_id = ANY($1::int[]) ORDER BY order_id, id`

	foreignKeyViolation = "23503"
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the order row and its items in a single transaction.
func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	o.Items = append([]Item(nil), o.Items...)

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertOrderQuery,
			o.OrderNumber,
			o.OrderDate,
			o.TotalAmount,
			o.CustomerName,
			o.CustomerEmail,
			o.ShippingAddress,
			string(o.Status),
			nullString(o.PaymentTransactionID),
			nullTime(o.PaymentDate),
		).Scan(&o.ID); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range o.Items {
			it := &o.Items[i]
			it.OrderID = o.ID
			if err := tx.QueryRowContext(ctx, insertItemQuery,
				it.OrderID,
				it.ProductID,
				it.ProductName,
				it.UnitPrice,
				it.Quantity,
				it.TotalPrice,
			).Scan(&it.ID); err != nil {
				if isForeignKeyViolation(err) {
					return ErrUnknownProduct
				}
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	items, err := r.queryItems(ctx, getItemsQuery, id)
	if err != nil {
		return Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}

	rows, err := r.db.QueryContext(ctx, listOrdersQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0, len(ids))
	index := make(map[int]int, len(ids))
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Items = []Item{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.queryItems(ctx, listItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, nil
}

func (r *PostgresRepository) queryItems(ctx context.Context, q string, args ...any) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.ProductName,
			&it.UnitPrice,
			&it.Quantity,
			&it.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		o           Order
		status      string
		txID        sql.NullString
		paymentDate sql.NullTime
	)
	if err := scanner.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.OrderDate,
		&o.TotalAmount,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.ShippingAddress,
		&status,
		&txID,
		&paymentDate,
	); err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	o.PaymentTransactionID = txID.String
	if paymentDate.Valid {
		t := paymentDate.Time
		o.PaymentDate = &t
	}
	return o, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
