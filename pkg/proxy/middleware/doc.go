// Package middleware provides the HTTP middleware chain for the
// GuestReview Genius server: panic recovery, request logging, request
// ID propagation, CORS with preflight termination, per-request
// timeouts, and metrics collection.
//
// The chain is applied outermost first:
//
//	recovery -> logging -> request ID -> CORS -> metrics -> timeout -> mux
package middleware
