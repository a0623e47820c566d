package generations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores generations in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Generation
	byForm map[string][]Generation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Generation),
		byForm: make(map[string][]Generation),
	}
}

// Create stores the generation.
func (r *MemoryRepo) Create(ctx context.Context, gen Generation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if gen.ID == "" || gen.FormID == "" {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[gen.ID] = gen
	r.byForm[gen.FormID] = append(r.byForm[gen.FormID], gen)
	return nil
}

// GetByID returns a generation by ID within a form.
func (r *MemoryRepo) GetByID(ctx context.Context, formID, generationID string) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.byID[generationID]
	if !ok || gen.FormID != formID {
		return Generation{}, ErrNotFound
	}
	return gen, nil
}

// ListByForm returns generations for a form, newest first, with limit/offset.
func (r *MemoryRepo) ListByForm(ctx context.Context, formID string, limit, offset int) ([]Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	formGens := r.byForm[formID]
	gens := make([]Generation, len(formGens))
	copy(gens, formGens)
	r.mu.RUnlock()

	if len(gens) == 0 || offset >= len(gens) {
		return []Generation{}, nil
	}

	sort.SliceStable(gens, func(i, j int) bool {
		return gens[i].CreatedAt.After(gens[j].CreatedAt)
	})

	end := len(gens)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return gens[offset:end], nil
}

// DeleteByForm drops the generations of a form.
func (r *MemoryRepo) DeleteByForm(ctx context.Context, formID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	gens := r.byForm[formID]
	for _, gen := range gens {
		delete(r.byID, gen.ID)
	}
	delete(r.byForm, formID)
	return len(gens), nil
}

var _ Repo = (*MemoryRepo)(nil)
