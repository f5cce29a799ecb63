package accessories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

var ErrAccessoryNotFound = errors.New("accessory not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) List(ctx context.Context) ([]domain.Accessory, error) {
	query := `
		SELECT id, name, category, description, price, stock_quantity, image_url, created_at, updated_at
		FROM accessories
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accessories: %w", err)
	}
	defer rows.Close()

	var result []domain.Accessory
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Accessory, error) {
	query := `
		SELECT id, name, category, description, price, stock_quantity, image_url, created_at, updated_at
		FROM accessories
		WHERE id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query accessory: %w", err)
	}
	defer rows.Close()

	var found *domain.Accessory
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, err
		}
		found = a
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if found == nil {
		return nil, ErrAccessoryNotFound
	}
	return found, nil
}

func (r *Repository) Create(ctx context.Context, a *domain.Accessory) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO accessories (name, category, description, price, stock_quantity, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Name, a.Category, a.Description, a.Price.String(), a.StockQuantity, a.ImageURL, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert accessory: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *Repository) Update(ctx context.Context, a *domain.Accessory) error {
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE accessories
		SET name = $1, category = $2, description = $3, price = $4, stock_quantity = $5, image_url = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Name, a.Category, a.Description, a.Price.String(), a.StockQuantity, a.ImageURL, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update accessory: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return ErrAccessoryNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accessories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete accessory: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return ErrAccessoryNotFound
	}
	return nil
}

func scanAccessory(rows *sql.Rows) (*domain.Accessory, error) {
	var a domain.Accessory
	var price string
	if err := rows.Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.Description,
		&price,
		&a.StockQuantity,
		&a.ImageURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan accessory: %w", err)
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	a.Price = parsed
	return &a, nil
}
