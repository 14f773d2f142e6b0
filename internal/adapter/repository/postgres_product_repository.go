package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/repository"
	apperrors "github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

type postgresProductRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &postgresProductRepository{pool: pool}
}

const productColumns = `id, seller_id, title, description, price, condition, category, location,
	images, is_sold, allow_campus_meetup, allow_delivery, allow_pickup, created_at`

func (r *postgresProductRepository) Create(ctx context.Context, product *entity.Product) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (seller_id, title, description, price, condition, category, location,
			images, allow_campus_meetup, allow_delivery, allow_pickup)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		product.SellerID, product.Title, product.Description, product.Price,
		product.Condition, product.Category, product.Location, product.Images,
		product.AllowCampusMeetup, product.AllowDelivery, product.AllowPickup,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return apperrors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Product", err)
		}
		return nil, apperrors.Internal("Failed to get product", err)
	}
	return product, nil
}

func (r *postgresProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	where := "TRUE"
	args := []interface{}{}

	addCond := func(cond string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}

	if !filter.IncludeSold {
		where += " AND is_sold = FALSE"
	}
	if filter.Category != "" {
		addCond("category = $%d", filter.Category)
	}
	if filter.Condition != "" {
		addCond("condition = $%d", filter.Condition)
	}
	if filter.SellerID != 0 {
		addCond("seller_id = $%d", filter.SellerID)
	}
	if filter.MinPrice > 0 {
		addCond("price >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		addCond("price <= $%d", filter.MaxPrice)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Internal("Failed to count products", err)
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list products", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, apperrors.Internal("Failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal("Failed to list products", err)
	}

	return products, total, nil
}

func (r *postgresProductRepository) MarkSold(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET is_sold = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperrors.Internal("Failed to mark product sold", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Product", nil)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID, &product.SellerID, &product.Title, &product.Description,
		&product.Price, &product.Condition, &product.Category, &product.Location,
		&product.Images, &product.IsSold,
		&product.AllowCampusMeetup, &product.AllowDelivery, &product.AllowPickup,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
