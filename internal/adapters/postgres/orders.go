package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marquee-live/storefront/internal/domain"
)

func (r *Repository) CreateOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, kind, status, subtotal, discount, tax, shipping, total_amount, delivery, coupon_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, order.ID, order.CustomerID, order.Kind, order.Status, order.Subtotal, order.Discount,
		order.Tax, order.Shipping, order.TotalAmount, order.Delivery, order.CouponCode, order.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, description, unit_price, quantity)
			VALUES ($1, $2, $3, $4)
		`, order.ID, item.Description, item.UnitPrice, item.Quantity)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
	`, orderID, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, kind, status, subtotal, discount, tax, shipping, total_amount, delivery, coupon_code, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.CustomerID, &order.Kind, &order.Status, &order.Subtotal,
		&order.Discount, &order.Tax, &order.Shipping, &order.TotalAmount, &order.Delivery,
		&order.CouponCode, &order.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT description, unit_price, quantity
		FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.Description, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	return &order, nil
}

// ListOrders serves the back-office order screen: optional status filter,
// newest first.
func (r *Repository) ListOrders(ctx context.Context, status string, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, kind, status, subtotal, discount, tax, shipping, total_amount, delivery, coupon_code, created_at
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.Kind, &order.Status, &order.Subtotal,
			&order.Discount, &order.Tax, &order.Shipping, &order.TotalAmount, &order.Delivery,
			&order.CouponCode, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
