package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Lyrics provider errors
	ErrProviderRequest  = fmt.Errorf("lyrics provider request failed")
	ErrProviderResponse = fmt.Errorf("unexpected lyrics provider response")
	ErrProviderSkipped  = fmt.Errorf("lyrics provider skipped")

	// Classification errors
	ErrUnknownLevel   = fmt.Errorf("unknown filter level")
	ErrAnalysisFailed = fmt.Errorf("content analysis failed")

	// Persistence errors
	ErrOverrideNotFound = fmt.Errorf("override not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
