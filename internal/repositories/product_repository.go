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

// ErrInsufficientStock is returned when a conditional decrement finds less
// stock than requested. The row is left untouched in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	GetAvailableStock(ctx context.Context, id uuid.UUID) (int, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, quantity int) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (id, name, image, price, stock_quantity, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.Name, product.Image, product.Price, product.StockQuantity).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// UpdateProduct writes the catalog fields only. Stock is never written here:
// the quantity column belongs to cart and checkout, which subtract through
// their own conditional statements.
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, image = $2, price = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Image, product.Price, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, image, price, stock_quantity, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Image, &product.Price, &product.StockQuantity, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (page - 1) * size

	query := `
		SELECT id, name, image, price, stock_quantity, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Image, &product.Price, &product.StockQuantity, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) GetAvailableStock(ctx context.Context, id uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var stock int

	query := `SELECT stock_quantity FROM products WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		return 0, fmt.Errorf("querying database: %w", err)
	}

	return stock, nil
}

// DecrementStock checks and subtracts in one conditional UPDATE. Two
// concurrent callers racing on the last units cannot both win: the WHERE
// clause rejects whichever statement runs second. Runs inside the checkout
// transaction, so a later abort undoes the subtraction.
func (r *productRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`

	result, err := tx.ExecContext(dbCtx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return fmt.Errorf("product %s: %w", id, ErrInsufficientStock)
	}

	return nil
}
