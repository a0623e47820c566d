package generations

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var generationCols = []string{"id", "form_id", "status", "error", "size_bytes", "sections", "duration_ms", "created_at"}

func TestPGRepoCreateInsertsMetadata(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	gen := Generation{
		ID:         "gen-1",
		FormID:     "form-1",
		Status:     StatusSucceeded,
		SizeBytes:  2048,
		Sections:   6,
		DurationMs: 12.5,
		CreatedAt:  time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO generations").
		WithArgs(
			gen.ID,
			gen.FormID,
			"succeeded",
			"",
			gen.SizeBytes,
			gen.Sections,
			gen.DurationMs,
			gen.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), gen); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateRejectsMissingIDs(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), Generation{ID: "gen-1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPGRepoGetByIDMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, form_id, status").
		WithArgs("gen-404", "form-1").
		WillReturnRows(sqlmock.NewRows(generationCols))

	repo := &PGRepo{DB: db}
	_, err = repo.GetByID(context.Background(), "form-1", "gen-404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByFormClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(generationCols).
		AddRow("gen-2", "form-1", "failed", "render: boom", int64(0), 6, 3.0, created.Add(time.Minute)).
		AddRow("gen-1", "form-1", "succeeded", "", int64(2048), 6, 12.5, created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM generations WHERE form_id = $1 ORDER BY created_at DESC LIMIT 100 OFFSET 0")).
		WithArgs("form-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.ListByForm(context.Background(), "form-1", 500, -3)
	if err != nil {
		t.Fatalf("ListByForm: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 generations, got %d", len(got))
	}
	if got[0].Status != StatusFailed || got[0].Error != "render: boom" {
		t.Fatalf("unexpected first generation: %+v", got[0])
	}
	if got[1].SizeBytes != 2048 {
		t.Fatalf("expected size 2048, got %d", got[1].SizeBytes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteByForm(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM generations WHERE form_id = $1")).
		WithArgs("form-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := &PGRepo{DB: db}
	n, err := repo.DeleteByForm(context.Background(), "form-1")
	if err != nil {
		t.Fatalf("DeleteByForm: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows deleted, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
