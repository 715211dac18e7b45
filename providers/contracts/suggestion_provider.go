package contracts

import "context"

// ISuggestionProvider is the single boundary between the organizer and any
// inference backend: it turns a rendered prompt into raw suggestion text.
// Callers must not branch on the backend identity outside this interface.
type ISuggestionProvider interface {
	SuggestionRequest(ctx context.Context, prompt string) (string, error)
}
