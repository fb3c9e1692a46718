package summary

import "fmt"

// SummarizationError indicates that every attempt to produce a summary
// failed. It wraps the error from the final attempt.
type SummarizationError struct {
	Attempts int
	Cause    error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *SummarizationError) Unwrap() error {
	return e.Cause
}
