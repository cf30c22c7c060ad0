package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marquee-live/storefront/internal/domain"
)

func (r *Repository) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, c.ID, c.Name, c.Email, c.Phone, c.Address)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// UpsertCustomer is the checkout path: the storefront collects customer
// details on every purchase, so an existing email just refreshes the record.
func (r *Repository) UpsertCustomer(ctx context.Context, tx pgx.Tx, c domain.Customer) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO customers (id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (email) DO UPDATE SET name = $2, phone = $4, address = $5
		RETURNING id
	`, c.ID, c.Name, c.Email, c.Phone, c.Address).Scan(&id)
	return id, err
}

func (r *Repository) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCustomers(ctx context.Context, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *Repository) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE customers SET name = $2, email = $3, phone = $4, address = $5 WHERE id = $1
	`, c.ID, c.Name, c.Email, c.Phone, c.Address)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) SubscribeNewsletter(ctx context.Context, sub domain.NewsletterSubscriber) error {
	result, err := r.pool.Exec(ctx, `
		INSERT INTO newsletter_subscribers (id, email, subscribed_at)
		VALUES ($1, $2, now())
		ON CONFLICT (email) DO NOTHING
	`, sub.ID, sub.Email)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
