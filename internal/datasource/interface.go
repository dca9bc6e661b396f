// Package datasource implements the upstream HTTP clients that feed the
// pipeline: fixtures and results from api-tennis.com, head-to-head odds
// from the-odds-api.com.
package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/court-edge/internal/models"
)

// FixtureSource retrieves the matches scheduled on a given day
type FixtureSource interface {
	// FetchFixtures retrieves the singles fixtures scheduled on the given date
	FetchFixtures(ctx context.Context, date time.Time) ([]models.Fixture, error)

	// Name returns the name of the data source
	Name() string
}

// OddsSource retrieves current head-to-head match odds
type OddsSource interface {
	// FetchOdds retrieves the currently quoted two-way match markets
	FetchOdds(ctx context.Context) ([]models.OddsQuote, error)

	// Name returns the name of the data source
	Name() string
}

// ResultSource retrieves completed matches for settlement
type ResultSource interface {
	// FetchResults retrieves the completed singles matches for the given date
	FetchResults(ctx context.Context, date time.Time) ([]models.MatchResult, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

var (
	// ErrUpstreamEmpty marks an upstream response that succeeded but carried
	// no usable payload, which callers treat as "no data today".
	ErrUpstreamEmpty = errors.New("upstream returned no data")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
