package marketdata

import "context"

// Provider fetches per-symbol market data. Implementations return partial
// results: a category that cannot be fetched carries an Err marker inside its
// sub-record instead of failing the snapshot.
type Provider interface {
	// Snapshot returns the full per-symbol view for analysis.
	Snapshot(ctx context.Context, symbol string) (*Snapshot, error)

	// Quote returns the lightweight view used by discovery scans.
	Quote(ctx context.Context, symbol string) (*Quote, error)

	// Search looks up tickers by company name or fragment.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
