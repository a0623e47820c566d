package generations

import "context"

// Repo defines persistence operations for generations.
type Repo interface {
	Create(ctx context.Context, gen Generation) error
	GetByID(ctx context.Context, formID, generationID string) (Generation, error)
	ListByForm(ctx context.Context, formID string, limit, offset int) ([]Generation, error)
	// DeleteByForm drops every generation of a form and reports how many went.
	DeleteByForm(ctx context.Context, formID string) (int, error)
}
