package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/storex/internal/money"
)

const Schema = `
CREATE TABLE IF NOT EXISTS addresses (
	id         TEXT PRIMARY KEY,
	line1      TEXT NOT NULL,
	line2      TEXT NOT NULL DEFAULT '',
	city       TEXT NOT NULL,
	state      TEXT NOT NULL,
	zip_code   TEXT NOT NULL,
	phone      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	address_id     TEXT NOT NULL REFERENCES addresses(id),
	order_status   TEXT NOT NULL,
	payment_status TEXT NOT NULL,
	total          NUMERIC(12,2) NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_user_idx ON orders (user_id, created_at DESC);
CREATE TABLE IF NOT EXISTS order_items (
	order_id    TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	line        INTEGER NOT NULL,
	product_id  TEXT NOT NULL,
	name        TEXT NOT NULL,
	price       NUMERIC(12,2) NOT NULL,
	image       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	quantity    INTEGER NOT NULL CHECK (quantity > 0),
	PRIMARY KEY (order_id, line)
);
`

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, address_id, order_status, payment_status, total, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, o.ID, o.UserID, o.AddressID, o.OrderStatus, o.PaymentStatus, o.Total.String(), o.CreatedAt, o.UpdatedAt); err != nil {
		return err
	}

	for i, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, line, product_id, name, price, image, description, quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, o.ID, i, it.Product.ID, it.Product.Name, it.Product.Price.String(), it.Product.Image, it.Product.Description, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT id, user_id, address_id, order_status, payment_status, total::text, created_at, updated_at
		FROM orders WHERE id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	limit, offset = normalizePage(limit, offset)
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, address_id, order_status, payment_status, total::text, created_at, updated_at
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, *o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Items, err = r.items(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PGRepo) TransitionPayment(ctx context.Context, id string, from, to PaymentStatus, status Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_status = $3, order_status = $4, updated_at = NOW()
		WHERE id = $1 AND payment_status = $2
	`, id, from, to, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PGRepo) items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, name, price::text, image, description, quantity
		FROM order_items WHERE order_id=$1 ORDER BY line
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(&it.Product.ID, &it.Product.Name, &price, &it.Product.Image, &it.Product.Description, &it.Quantity); err != nil {
			return nil, err
		}
		if it.Product.Price, err = money.Parse(price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var total string
	if err := row.Scan(&o.ID, &o.UserID, &o.AddressID, &o.OrderStatus, &o.PaymentStatus, &total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	amt, err := money.Parse(total)
	if err != nil {
		return nil, err
	}
	o.Total = amt
	return &o, nil
}

type PGAddressRepo struct{ db *pgxpool.Pool }

func NewPGAddressRepo(db *pgxpool.Pool) *PGAddressRepo { return &PGAddressRepo{db: db} }

func (r *PGAddressRepo) Create(ctx context.Context, a *Address) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO addresses (id, line1, line2, city, state, zip_code, phone, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, a.ID, a.Line1, a.Line2, a.City, a.State, a.ZipCode, a.Phone, a.CreatedAt)
	return err
}

func (r *PGAddressRepo) GetByID(ctx context.Context, id string) (*Address, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var a Address
	err := r.db.QueryRow(ctx, `
		SELECT id, line1, line2, city, state, zip_code, phone, created_at
		FROM addresses WHERE id=$1
	`, id).Scan(&a.ID, &a.Line1, &a.Line2, &a.City, &a.State, &a.ZipCode, &a.Phone, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGAddressRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id=$1`, id)
	return err
}
