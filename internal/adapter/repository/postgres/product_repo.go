package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/inventory-backend/internal/domain"
)

// productRepository implements domain.ProductStore
type productRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) domain.ProductStore {
	return &productRepository{db: db}
}

// Create inserts a product and returns it with the database-assigned ID
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (ledger_id, asset_id, name, description, quantity, price, vat, future_price, future_vat, attributes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var ledgerID interface{}
	if product.LedgerID != nil {
		ledgerID = *product.LedgerID
	}

	attributes, err := encodeAttributes(product.Attributes)
	if err != nil {
		return nil, err
	}

	stored := *product
	err = r.db.QueryRowContext(ctx, query,
		ledgerID,
		product.AssetID,
		product.Name,
		product.Description,
		product.Quantity,
		numericString(product.Price),
		numericString(product.VAT),
		numericString(product.FuturePrice),
		numericString(product.FutureVAT),
		attributes,
		product.CreatedAt,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &stored, nil
}

// List retrieves all products ordered by ID
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, ledger_id, asset_id, name, description, quantity, price, vat, future_price, future_vat, attributes, created_at
		FROM products
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		var ledgerID sql.NullInt64
		var priceStr, vatStr, futurePriceStr, futureVATStr string
		var attributes []byte

		if err := rows.Scan(
			&p.ID,
			&ledgerID,
			&p.AssetID,
			&p.Name,
			&p.Description,
			&p.Quantity,
			&priceStr,
			&vatStr,
			&futurePriceStr,
			&futureVATStr,
			&attributes,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		if ledgerID.Valid {
			id := ledgerID.Int64
			p.LedgerID = &id
		}

		// Parse NUMERIC columns
		if p.Price, err = parseNumeric(priceStr, "price"); err != nil {
			return nil, err
		}
		if p.VAT, err = parseNumeric(vatStr, "vat"); err != nil {
			return nil, err
		}
		if p.FuturePrice, err = parseNumeric(futurePriceStr, "future_price"); err != nil {
			return nil, err
		}
		if p.FutureVAT, err = parseNumeric(futureVATStr, "future_vat"); err != nil {
			return nil, err
		}

		if p.Attributes, err = decodeAttributes(attributes); err != nil {
			return nil, err
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// numericString renders a float for a NUMERIC column without binary-float noise
func numericString(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func parseNumeric(s, column string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return d.InexactFloat64(), nil
}

func encodeAttributes(attributes map[string]any) ([]byte, error) {
	if len(attributes) == 0 {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product attributes: %w", err)
	}
	return data, nil
}

func decodeAttributes(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var attributes map[string]any
	if err := json.Unmarshal(data, &attributes); err != nil {
		return nil, fmt.Errorf("failed to decode product attributes: %w", err)
	}
	if len(attributes) == 0 {
		return nil, nil
	}
	return attributes, nil
}
