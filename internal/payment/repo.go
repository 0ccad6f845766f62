package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MikeMC777/storex/internal/money"
)

var ErrNotFound = errors.New("payment not found")

const opTimeout = 5 * time.Second

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
}

const Collection = "payments"

func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderId", Value: 1}}},
	}
}

type MongoRepo struct{ coll *mongo.Collection }

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(Collection)}
}

func (r *MongoRepo) Create(ctx context.Context, p *Payment) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (*Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p Payment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

const Schema = `
CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	order_id   TEXT NOT NULL REFERENCES orders(id),
	user_id    TEXT NOT NULL,
	amount     NUMERIC(12,2) NOT NULL,
	currency   TEXT NOT NULL,
	method     TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS payments_order_idx ON payments (order_id);
`

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Payment) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, order_id, user_id, amount, currency, method, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, p.ID, p.OrderID, p.UserID, p.Amount.String(), p.Currency, p.Method, p.Status, p.CreatedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p Payment
	var amount string
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, user_id, amount::text, currency, method, status, created_at
		FROM payments WHERE id=$1
	`, id).Scan(&p.ID, &p.OrderID, &p.UserID, &amount, &p.Currency, &p.Method, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Amount, err = money.Parse(amount); err != nil {
		return nil, err
	}
	return &p, nil
}
