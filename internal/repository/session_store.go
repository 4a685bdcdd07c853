package repository

import "context"

// FormState is the one-shot payload a failed form submission leaves behind
// so the next page load can repopulate the form. It survives exactly one
// read: PopFormState both returns and clears it.
type FormState struct {
	Values map[string]string `json:"values"`
	Errors []string          `json:"errors"`
}

type SessionStore interface {
	// IsAuthenticated reports whether the session holds the admin flag.
	// Unknown session IDs are simply unauthenticated, not an error.
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)
	SetAuthenticated(ctx context.Context, sessionID string) error
	// Destroy drops the session and any pending form state.
	Destroy(ctx context.Context, sessionID string) error
	PutFormState(ctx context.Context, sessionID string, state *FormState) error
	// PopFormState returns the pending form state and removes it in the
	// same operation. Returns nil when nothing is pending.
	PopFormState(ctx context.Context, sessionID string) (*FormState, error)
}
