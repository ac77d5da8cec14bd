package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMarshalsSections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	doc := Resume{
		ID:         "resume-1",
		OwnerID:    "guest:alice",
		Name:       "Untitled Resume",
		TemplateID: "modern",
		ColorID:    "blue",
		Colors:     Colors{Primary: "#2563eb", Secondary: "#93c5fd"},
		Skills:     []Skill{{ID: "s1", Name: "Go", Level: 5}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	skillsJSON, _ := json.Marshal(doc.Skills)
	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			doc.ID,
			doc.OwnerID,
			doc.Name,
			doc.TemplateID,
			doc.ColorID,
			sqlmock.AnyArg(), // colors
			sqlmock.AnyArg(), // personal_info
			[]byte("[]"),     // education
			[]byte("[]"),     // experience
			skillsJSON,
			[]byte("[]"), // languages
			[]byte("[]"), // certifications
			doc.CreatedAt,
			doc.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansSections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	columns := []string{
		"id", "owner_id", "name", "template_id", "color_id", "colors",
		"personal_info", "education", "experience", "skills", "languages",
		"certifications", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"resume-1",
		"guest:alice",
		"Backend CV",
		"modern",
		"teal",
		[]byte(`{"primary":"#0d9488","secondary":"#5eead4"}`),
		[]byte(`{"fullName":"Ada Lovelace","title":"","email":"","phone":"","address":"","summary":""}`),
		[]byte(`[]`),
		[]byte(`[{"id":"e1","company":"Analytical Engines","position":"Engineer","location":"","startDate":"","endDate":"","description":""}]`),
		[]byte(`[]`),
		[]byte(`[]`),
		[]byte(`[]`),
		now,
		now,
	)
	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("guest:alice", "resume-1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "guest:alice", "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.PersonalInfo.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected personal info: %+v", doc.PersonalInfo)
	}
	if len(doc.Experience) != 1 || doc.Experience[0].Company != "Analytical Engines" {
		t.Fatalf("unexpected experience: %+v", doc.Experience)
	}
	if doc.Colors.Primary != "#0d9488" {
		t.Fatalf("unexpected colors: %+v", doc.Colors)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMissingReportsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("guest:alice", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "guest:alice", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSaveMissingRowReportsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Save(context.Background(), Resume{ID: "resume-1", OwnerID: "guest:alice"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteMissingRowReportsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("guest:alice", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "guest:alice", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCountByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("guest:alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByOwner(context.Background(), "guest:alice")
	if err != nil {
		t.Fatalf("CountByOwner: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}
