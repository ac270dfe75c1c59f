// Package rows defines the port for raw tabular data sources.
package rows

import "context"

// Source yields the raw spreadsheet grid for the configured dataset.
// Row 0 carries headers; subsequent rows carry data. An empty grid is a
// valid result. Implementations report transport failures as errors; the
// dataset service decides how failures surface to the user.
type Source interface {
	Fetch(ctx context.Context) ([][]any, error)
}
