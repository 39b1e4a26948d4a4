package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles portfolio persistence
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new portfolio repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the portfolio tables if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS portfolios (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS holdings (
			id UUID PRIMARY KEY,
			portfolio_id UUID NOT NULL REFERENCES portfolios (id) ON DELETE CASCADE,
			ticker TEXT NOT NULL,
			shares DOUBLE PRECISION NOT NULL,
			buy_price DOUBLE PRECISION,
			UNIQUE (portfolio_id, ticker)
		)`,
	}

	for _, query := range queries {
		if _, err := r.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to ensure portfolio schema: %w", err)
		}
	}
	return nil
}

// Create inserts a new empty portfolio
func (r *Repository) Create(ctx context.Context, name string) (*Portfolio, error) {
	p := &Portfolio{
		ID:       uuid.NewString(),
		Name:     name,
		Holdings: []Holding{},
	}

	query := `
		INSERT INTO portfolios (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query, p.ID, p.Name).Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return p, nil
}

// List returns all portfolios with their holdings
func (r *Repository) List(ctx context.Context) ([]Portfolio, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at
		FROM portfolios
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := []Portfolio{}
	for rows.Next() {
		var p Portfolio
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		p.Holdings = []Holding{}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read portfolios: %w", err)
	}

	for i := range portfolios {
		holdings, err := r.listHoldings(ctx, portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		portfolios[i].Holdings = holdings
	}
	return portfolios, nil
}

// Get returns one portfolio with its holdings
func (r *Repository) Get(ctx context.Context, id string) (*Portfolio, error) {
	var p Portfolio
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM portfolios
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("portfolio %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	p.Holdings, err = r.listHoldings(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a portfolio; holdings cascade
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}

// AddHolding adds shares of a ticker. If the ticker is already held the
// shares are merged into the existing row and the original buy price kept.
func (r *Repository) AddHolding(ctx context.Context, portfolioID, ticker string, shares float64, buyPrice *float64) error {
	query := `
		INSERT INTO holdings (id, portfolio_id, ticker, shares, buy_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (portfolio_id, ticker) DO UPDATE SET
			shares = holdings.shares + EXCLUDED.shares
	`

	_, err := r.pool.Exec(ctx, query,
		uuid.NewString(), portfolioID, strings.ToUpper(ticker), shares, buyPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to add holding: %w", err)
	}
	return nil
}

// RemoveHolding removes a ticker from a portfolio entirely
func (r *Repository) RemoveHolding(ctx context.Context, portfolioID, ticker string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM holdings
		WHERE portfolio_id = $1 AND ticker = $2
	`, portfolioID, strings.ToUpper(ticker))
	if err != nil {
		return fmt.Errorf("failed to remove holding: %w", err)
	}
	return nil
}

func (r *Repository) listHoldings(ctx context.Context, portfolioID string) ([]Holding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ticker, shares, buy_price
		FROM holdings
		WHERE portfolio_id = $1
		ORDER BY ticker
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := []Holding{}
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.Ticker, &h.Shares, &h.BuyPrice); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}
	return holdings, nil
}
