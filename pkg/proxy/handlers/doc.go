// Package handlers implements the HTTP handlers for the GuestReview
// Genius API: the chat and summarization proxies, survey and feedback
// intake, admin listings, and health probes.
package handlers
