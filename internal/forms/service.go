package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cv-builder/internal/extract"
	"cv-builder/internal/generations"
	"cv-builder/internal/sessions"
	"cv-builder/internal/shared/metrics"
	"cv-builder/internal/shared/telemetry"
	"cv-builder/resume/document"
	"cv-builder/resume/form"
	"cv-builder/resume/model"
	"cv-builder/resume/render"
)

// Service contains business logic for form sessions.
type Service struct {
	Sessions    *sessions.Store
	Renderer    render.Renderer
	Generations generations.Repo
	Options     form.Options
	Now         func() time.Time
}

// Download is the outcome of a successful render.
type Download struct {
	Data       []byte
	Generation generations.Generation
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create starts a new session with blank defaults.
func (s *Service) Create(ctx context.Context) (*sessions.Session, error) {
	return s.Sessions.Create(ctx, form.New(s.Options))
}

// Get returns a live session.
func (s *Service) Get(ctx context.Context, formID string) (*sessions.Session, error) {
	return s.Sessions.Get(ctx, formID)
}

// SetField updates a top-level scalar field.
func (s *Service) SetField(ctx context.Context, formID, field, value string) (*sessions.Session, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := sess.Form.SetScalar(field, value); err != nil {
		return nil, err
	}
	return sess, nil
}

// AppendItem appends a row to a list. An empty request appends a blank row.
func (s *Service) AppendItem(ctx context.Context, formID string, cat form.Category, req listItemRequest) (*sessions.Session, int, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return nil, 0, err
	}
	f := sess.Form

	var index int
	switch {
	case req.isEmpty():
		index, err = f.AppendListItem(cat)
	case req.Value != nil:
		if len(req.Fields) > 0 || req.Highlights != nil {
			return nil, 0, fmt.Errorf("%w: value and fields are exclusive", ErrInvalidInput)
		}
		index, err = f.AppendScalar(cat, *req.Value)
	default:
		if req.Highlights != nil && cat != form.CategoryExperience {
			return nil, 0, fmt.Errorf("%w: highlights only apply to experience", ErrInvalidInput)
		}
		index, err = f.AppendEntry(cat, form.Patch(req.Fields))
		if err == nil && req.Highlights != nil {
			err = f.SetHighlights(index, req.Highlights)
		}
	}
	if err != nil {
		return nil, 0, err
	}
	return sess, index, nil
}

// UpdateItem edits a list row in place.
func (s *Service) UpdateItem(ctx context.Context, formID string, cat form.Category, index int, req listItemRequest) (*sessions.Session, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	f := sess.Form

	switch {
	case req.isEmpty():
		return nil, fmt.Errorf("%w: value or fields required", ErrInvalidInput)
	case req.Value != nil:
		if len(req.Fields) > 0 || req.Highlights != nil {
			return nil, fmt.Errorf("%w: value and fields are exclusive", ErrInvalidInput)
		}
		err = f.SetListScalar(cat, index, *req.Value)
	default:
		if req.Highlights != nil && cat != form.CategoryExperience {
			return nil, fmt.Errorf("%w: highlights only apply to experience", ErrInvalidInput)
		}
		if len(req.Fields) > 0 {
			err = f.UpdateListItem(cat, index, form.Patch(req.Fields))
		}
		if err == nil && req.Highlights != nil {
			err = f.SetHighlights(index, req.Highlights)
		}
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// RemoveItem deletes a list row.
func (s *Service) RemoveItem(ctx context.Context, formID string, cat form.Category, index int) (*sessions.Session, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := sess.Form.RemoveListItem(cat, index); err != nil {
		return nil, err
	}
	return sess, nil
}

// Submit freezes the live record into a snapshot.
func (s *Service) Submit(ctx context.Context, formID string) (*sessions.Session, model.ResumeRecord, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return nil, model.ResumeRecord{}, err
	}
	rec, err := sess.Form.Submit()
	if err != nil {
		return nil, model.ResumeRecord{}, err
	}
	metrics.IncFormsSubmitted()
	return sess, rec, nil
}

// Reopen returns a submitted form to editing.
func (s *Service) Reopen(ctx context.Context, formID string) (*sessions.Session, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := sess.Form.Reopen(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Document builds the document model of the last snapshot.
func (s *Service) Document(ctx context.Context, formID string) (document.Document, error) {
	sess, err := s.Get(ctx, formID)
	if err != nil {
		return document.Document{}, err
	}
	rec, ok := sess.Form.Snapshot()
	if !ok {
		return document.Document{}, ErrNotSubmitted
	}
	return document.Build(rec), nil
}

// Download renders the last snapshot and records the attempt. A render
// failure aborts only this attempt; the session is left as it was.
func (s *Service) Download(ctx context.Context, formID string) (Download, error) {
	doc, err := s.Document(ctx, formID)
	if err != nil {
		return Download{}, err
	}
	data, gen, err := s.render(ctx, doc)
	gen.FormID = formID
	s.record(ctx, gen)
	if err != nil {
		return Download{Generation: gen}, err
	}
	return Download{Data: data, Generation: gen}, nil
}

// DownloadText renders the last snapshot and returns the text of the PDF.
func (s *Service) DownloadText(ctx context.Context, formID string) (string, error) {
	dl, err := s.Download(ctx, formID)
	if err != nil {
		return "", err
	}
	text, err := extract.ExtractTextFromBytes(ctx, dl.Data, render.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return text, nil
}

// RenderRecord renders a record without a session. Nothing is recorded
// in the ledger.
func (s *Service) RenderRecord(ctx context.Context, rec model.ResumeRecord) ([]byte, error) {
	data, _, err := s.render(ctx, document.Build(rec.Normalize()))
	return data, err
}

// ListGenerations returns render attempts for a live session, newest first.
func (s *Service) ListGenerations(ctx context.Context, formID string, limit, offset int) ([]generations.Generation, error) {
	if _, err := s.Get(ctx, formID); err != nil {
		return nil, err
	}
	if s.Generations == nil {
		return []generations.Generation{}, nil
	}
	return s.Generations.ListByForm(ctx, formID, limit, offset)
}

// GetGeneration returns one render attempt of a live session.
func (s *Service) GetGeneration(ctx context.Context, formID, generationID string) (generations.Generation, error) {
	if _, err := s.Get(ctx, formID); err != nil {
		return generations.Generation{}, err
	}
	if s.Generations == nil {
		return generations.Generation{}, generations.ErrNotFound
	}
	return s.Generations.GetByID(ctx, formID, generationID)
}

// PruneGenerations drops the ledger rows of a form whose session is gone.
// It is meant for sessions.Store.OnExpire.
func (s *Service) PruneGenerations(formID string) {
	if s.Generations == nil {
		return
	}
	n, err := s.Generations.DeleteByForm(context.Background(), formID)
	if err != nil {
		telemetry.Warn("generations.prune_failed", telemetry.Fields{"form_id": formID, "error": err})
		return
	}
	if n > 0 {
		telemetry.Info("generations.pruned", telemetry.Fields{"form_id": formID, "count": n})
	}
}

func (s *Service) render(ctx context.Context, doc document.Document) ([]byte, generations.Generation, error) {
	if s.Renderer == nil {
		return nil, generations.Generation{}, errors.New("renderer not configured")
	}
	start := time.Now()
	data, err := s.Renderer.Render(ctx, doc)
	if err == nil && len(data) == 0 {
		err = errors.New("render: empty output")
	}
	elapsed := metrics.SinceMillis(start)
	metrics.ObserveRenderDurationMs(elapsed)

	gen := generations.Generation{
		ID:         uuid.NewString(),
		Sections:   len(doc.Sections),
		DurationMs: elapsed,
		CreatedAt:  s.now(),
	}
	if err != nil {
		metrics.IncDocumentsFailed()
		gen.Status = generations.StatusFailed
		gen.Error = err.Error()
		return nil, gen, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	metrics.IncDocumentsRendered()
	gen.Status = generations.StatusSucceeded
	gen.SizeBytes = int64(len(data))
	return data, gen, nil
}

func (s *Service) record(ctx context.Context, gen generations.Generation) {
	if s.Generations == nil {
		return
	}
	// The ledger is best effort; a failed write never blocks the download.
	if err := s.Generations.Create(context.WithoutCancel(ctx), gen); err != nil {
		telemetry.Warn("generation.record_failed", telemetry.Fields{
			"form_id":       gen.FormID,
			"generation_id": gen.ID,
			"error":         err,
		})
	}
}
