// Package diag defines diagnostics shared across all pipeline phases:
// severities, stable error codes, the Bag accumulator and the Reporter
// contract phases use to emit without knowing where diagnostics end up.
package diag
