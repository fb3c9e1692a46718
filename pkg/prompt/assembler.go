package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// The fixed, ordered set of reference documents interpolated into the
// system prompt.
const (
	DocHostGuidelines         = "host-guidelines"
	DocPositiveReviewPlaybook = "positive-review-playbook"
	DocNegativeReviewPlaybook = "negative-review-playbook"
	DocResponseExamples       = "response-examples"
)

// DocumentNames returns the document identifiers in assembly order.
func DocumentNames() []string {
	return []string{
		DocHostGuidelines,
		DocPositiveReviewPlaybook,
		DocNegativeReviewPlaybook,
		DocResponseExamples,
	}
}

const promptTemplate = `You are GuestReview Genius, an AI assistant specialized in helping Airbnb hosts craft professional and effective responses to guest reviews. Your goal is to help hosts maintain high ratings and build trust with potential guests.

Host guidelines:
%s

Positive review playbook:
%s

Negative review playbook:
%s

Response examples:
%s

Process for every review:
1. Determine the sentiment of the review.
2. If the review is positive: thank the guest by name, reference the specific points they praised, and end with a warm invitation to return.
3. If the review is negative or mixed: acknowledge the guest's experience without being defensive, address each criticism constructively, describe the concrete improvement made, and close on a positive note that reassures future guests.
4. Always maintain a professional and courteous tone, and keep the response concise but thorough.`

// Assembler composes the system prompt for the chat assistant by
// concatenating the reference documents fetched from a DocumentStore.
// Assembly is resilient: a document that cannot be fetched contributes
// an empty slot rather than failing the prompt.
type Assembler struct {
	store  DocumentStore
	logger *slog.Logger
}

// NewAssembler creates a prompt assembler reading from store.
func NewAssembler(store DocumentStore) *Assembler {
	return &Assembler{
		store:  store,
		logger: slog.Default().With("component", "prompt.assembler"),
	}
}

// SystemPrompt fetches all reference documents concurrently and
// interpolates them into the prompt template. It never fails: each
// fetch error is logged and defaulted to an empty document.
func (a *Assembler) SystemPrompt(ctx context.Context) string {
	names := DocumentNames()
	bodies := make([]string, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			body, err := a.store.Fetch(ctx, name)
			if err != nil {
				a.logger.WarnContext(ctx, "reference document unavailable, using empty slot",
					"document", name,
					"error", err,
				)
				return
			}
			bodies[i] = body
		}(i, name)
	}
	wg.Wait()

	return fmt.Sprintf(promptTemplate, bodies[0], bodies[1], bodies[2], bodies[3])
}
