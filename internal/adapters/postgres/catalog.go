package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marquee-live/storefront/internal/domain"
)

// ListTiers returns the tier inventory for one event and ticket-type
// category, in insertion order. Sorting and current-tier selection belong
// to the pricing package.
func (r *Repository) ListTiers(ctx context.Context, eventID uuid.UUID, category domain.TierCategory) ([]domain.TierRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, category, title, price, available_quantity, active
		FROM event_tickets
		WHERE event_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY created_at ASC
	`, eventID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.TierRecord
	for rows.Next() {
		var rec domain.TierRecord
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.Category, &rec.Title, &rec.Price, &rec.AvailableQuantity, &rec.Active); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) CreateTier(ctx context.Context, rec domain.TierRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_tickets (id, event_id, category, title, price, available_quantity, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	`, rec.ID, rec.EventID, rec.Category, rec.Title, rec.Price, rec.AvailableQuantity, rec.Active)
	return err
}

func (r *Repository) UpdateTier(ctx context.Context, rec domain.TierRecord) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE event_tickets
		SET title = $2, price = $3, available_quantity = $4, active = $5
		WHERE id = $1
	`, rec.ID, rec.Title, rec.Price, rec.AvailableQuantity, rec.Active)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementTierStock takes sold tickets out of inventory inside the checkout
// transaction. The quantity guard keeps available_quantity from going
// negative under concurrent checkouts.
func (r *Repository) DecrementTierStock(ctx context.Context, tx pgx.Tx, tierID uuid.UUID, quantity int) error {
	result, err := tx.Exec(ctx, `
		UPDATE event_tickets
		SET available_quantity = available_quantity - $2
		WHERE id = $1 AND available_quantity >= $2
	`, tierID, quantity)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *Repository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM event_tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) ListMerchandise(ctx context.Context) ([]domain.Merchandise, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price, created_at
		FROM merchandise ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Merchandise
	for rows.Next() {
		var m domain.Merchandise
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *Repository) GetMerchandise(ctx context.Context, id uuid.UUID) (*domain.Merchandise, []domain.MerchandiseVariant, error) {
	var m domain.Merchandise
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price, created_at
		FROM merchandise WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, merchandise_id, size, color, stock
		FROM merchandise_variants WHERE merchandise_id = $1
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var variants []domain.MerchandiseVariant
	for rows.Next() {
		var v domain.MerchandiseVariant
		if err := rows.Scan(&v.ID, &v.MerchandiseID, &v.Size, &v.Color, &v.Stock); err != nil {
			return nil, nil, err
		}
		variants = append(variants, v)
	}
	return &m, variants, rows.Err()
}

func (r *Repository) CreateMerchandise(ctx context.Context, m domain.Merchandise) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO merchandise (id, name, description, price, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, m.ID, m.Name, m.Description, m.Price)
	return err
}

func (r *Repository) UpdateMerchandise(ctx context.Context, m domain.Merchandise) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE merchandise SET name = $2, description = $3, price = $4 WHERE id = $1
	`, m.ID, m.Name, m.Description, m.Price)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteMerchandise(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM merchandise WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) CreateVariant(ctx context.Context, v domain.MerchandiseVariant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO merchandise_variants (id, merchandise_id, size, color, stock)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.MerchandiseID, v.Size, v.Color, v.Stock)
	return err
}

func (r *Repository) DecrementVariantStock(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, quantity int) error {
	result, err := tx.Exec(ctx, `
		UPDATE merchandise_variants
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`, variantID, quantity)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
