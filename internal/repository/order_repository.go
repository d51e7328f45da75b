package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/order-service/internal/domain"
)

// OrderFilter narrows order listings. A zero Limit means no limit.
type OrderFilter struct {
	UserID   *int64
	Statuses []domain.OrderStatus
	Limit    int
	Offset   int
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	GetDetail(ctx context.Context, id int64) (*domain.OrderDetail, error)
	ListDetails(ctx context.Context, filter OrderFilter) ([]domain.OrderDetail, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `o.id, o.user_id, o.product_id, o.quantity, o.order_status, o.created_at, o.updated_at`

const detailQuery = `SELECT ` + orderColumns + `,
        u.username, u.email, p.name, p.price
    FROM orders o
    JOIN users u ON u.id = o.user_id
    JOIN products p ON p.id = o.product_id`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (user_id, product_id, quantity, order_status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		order.UserID,
		order.ProductID,
		order.Quantity,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	return mapError(err)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET product_id=$1, quantity=$2, order_status=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		order.ProductID,
		order.Quantity,
		order.Status,
		order.ID,
	).Scan(&order.UpdatedAt)
	return mapError(err)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id=$1`
	var order domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, id), &order); err != nil {
		return nil, mapError(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	where, args := buildOrderWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE %s ORDER BY o.id%s`, orderColumns, where, pageClause(filter))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *orderRepository) GetDetail(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	var detail domain.OrderDetail
	if err := scanDetail(r.pool.QueryRow(ctx, detailQuery+` WHERE o.id=$1`, id), &detail); err != nil {
		return nil, mapError(err)
	}
	return &detail, nil
}

func (r *orderRepository) ListDetails(ctx context.Context, filter OrderFilter) ([]domain.OrderDetail, error) {
	where, args := buildOrderWhere(filter)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.id%s`, detailQuery, where, pageClause(filter))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.OrderDetail{}
	for rows.Next() {
		var detail domain.OrderDetail
		if err := scanDetail(rows, &detail); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}

func buildOrderWhere(filter OrderFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("o.user_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("o.order_status IN (%s)", strings.Join(placeholders, ",")))
	}
	return strings.Join(clauses, " AND "), args
}

func pageClause(filter OrderFilter) string {
	if filter.Limit <= 0 {
		return ""
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
}

func scanOrder(row pgx.Row, order *domain.Order) error {
	return row.Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.Quantity,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

func scanDetail(row pgx.Row, detail *domain.OrderDetail) error {
	if err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.ProductID,
		&detail.Quantity,
		&detail.Status,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.User.Username,
		&detail.User.Email,
		&detail.Product.Name,
		&detail.Product.Price,
	); err != nil {
		return err
	}
	detail.User.ID = detail.UserID
	detail.Product.ID = detail.ProductID
	return nil
}
