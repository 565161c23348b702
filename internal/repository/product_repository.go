package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// ProductRepository defines persistence access for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, sku, stock, status, img_url, pdf_url, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, description, price, sku, stock, status, img_url, pdf_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.Stock,
		string(product.Status),
		product.ImgURL,
		product.PDFURL,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err = translate(err); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products
        SET name=$1, description=$2, price=$3, sku=$4, stock=$5, status=$6, img_url=$7, pdf_url=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.Stock,
		string(product.Status),
		product.ImgURL,
		product.PDFURL,
		product.ID,
	).Scan(&product.UpdatedAt)
	if err = translate(err); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete product: %w", ErrNotFound)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("select product: %w", translate(err))
	}
	return product, nil
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku=$1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, sku))
	if err != nil {
		return nil, fmt.Errorf("select product: %w", translate(err))
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product domain.Product
		status  string
	)
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.SKU,
		&product.Stock,
		&status,
		&product.ImgURL,
		&product.PDFURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	product.Status = domain.ProductStatus(status)
	return &product, nil
}
