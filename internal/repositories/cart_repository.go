package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/areejrazzaq/shopping-cart/internal/models"
	"github.com/areejrazzaq/shopping-cart/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity, maxQuantity int) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, uuid.UUID, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearCart(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetOrCreateCart returns the user's open cart, creating it on first use.
// The upsert touches the existing row, which also serializes concurrent
// mutations on the same cart behind its row lock.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	query := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, uuid.New(), userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCartWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	itemsQuery := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.image, p.price, p.stock_quantity, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var item models.CartItem

		product := &models.Product{}

		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&product.ID, &product.Name, &product.Image, &product.Price, &product.StockQuantity, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item.Product = product
		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cart, nil
}

// UpsertItem adds a line or increments the existing one for the same
// product. The increment path enforces maxQuantity in the statement itself
// so rapid double-clicks cannot push a line past current stock.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity, maxQuantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		WHERE cart_items.quantity + EXCLUDED.quantity <= $5
	`

	result, err := r.DB.ExecContext(dbCtx, query, uuid.New(), cartID, productID, quantity, maxQuantity)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return fmt.Errorf("product %s: %w", productID, ErrInsufficientStock)
	}

	return nil
}

// GetItem loads a cart line together with its product and the id of the
// user owning the cart, for ownership checks.
func (r *cartRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, uuid.UUID, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.CartItem{}
	product := &models.Product{}

	var ownerID uuid.UUID

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, c.user_id,
		       p.id, p.name, p.image, p.price, p.stock_quantity, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		JOIN products p ON ci.product_id = p.id
		WHERE ci.id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, itemID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &ownerID,
		&product.ID, &product.Name, &product.Image, &product.Price, &product.StockQuantity, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, uuid.Nil, err
		}

		return nil, uuid.Nil, fmt.Errorf("querying database: %w", err)
	}

	item.Product = product

	return item, ownerID, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteItem removes a line unconditionally. Deleting a line that is already
// gone is not an error.
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE id = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, itemID); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return nil
}

// ClearCart deletes all lines and the cart row itself inside the caller's
// transaction. The next add-to-cart recreates a fresh cart.
func (r *cartRepository) ClearCart(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
