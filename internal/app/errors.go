package app

import "errors"

var (
	// ErrEmptyQuery is returned for a blank search query or word.
	ErrEmptyQuery = errors.New("please enter something to search")

	// ErrDecomposeUnavailable is returned when decomposition is requested
	// without a successful English to Eald-vacha search before it.
	ErrDecomposeUnavailable = errors.New("decomposition is only available after a successful English → Eald-vacha search")

	// ErrFuzzyRange is returned for a fuzzy tolerance outside 50–95.
	ErrFuzzyRange = errors.New("fuzzy tolerance must be between 50 and 95")
)
