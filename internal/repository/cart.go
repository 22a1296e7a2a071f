package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storesys/checkout/internal/domain/cart"
)

const (
	getCartSQL = `SELECT id, customer_id FROM carts WHERE id = $1 AND customer_id = $2`

	// Item order must match insertion order: downstream inventory calls
	// depend on a stable, index-aligned projection of the lines.
	getCartItemsSQL = `SELECT p.id, p.name, p.price, p.weight, p.fragile, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// FindByIDAndCustomer returns the cart with its items resolved against the
// product catalog. A cart that exists but belongs to a different customer
// is reported as cart.ErrNotFound, same as an absent one. Both queries run
// in one read-only transaction so the cart row and its items come from the
// same snapshot.
func (r *CartRepository) FindByIDAndCustomer(ctx context.Context, cartID, customerID string) (*cart.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning cart read tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, getCartSQL, cartID, customerID)
	if err != nil {
		return nil, fmt.Errorf("getting cart %q: %w", cartID, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (cart.Cart, error) {
		var c cart.Cart
		err := row.Scan(&c.ID, &c.CustomerID)
		return c, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("getting cart %q: %w", cartID, err)
	}

	itemRows, err := tx.Query(ctx, getCartItemsSQL, cartID)
	if err != nil {
		return nil, fmt.Errorf("getting items for cart %q: %w", cartID, err)
	}
	c.Items, err = pgx.CollectRows(itemRows, scanCartItem)
	if err != nil {
		return nil, fmt.Errorf("getting items for cart %q: %w", cartID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing cart read tx: %w", err)
	}
	return &c, nil
}

func scanCartItem(row pgx.CollectableRow) (cart.Item, error) {
	var (
		it    cart.Item
		price decimal.Decimal
	)
	err := row.Scan(
		&it.Product.ID, &it.Product.Name, &price,
		&it.Product.Weight, &it.Product.Fragile, &it.Quantity,
	)
	it.Product.Price = price
	return it, err
}
