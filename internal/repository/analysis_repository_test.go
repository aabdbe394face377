package repository

import (
	"testing"

	"gorm.io/gorm"

	"legalai-review/internal/model"
	"legalai-review/internal/platform/database"
)

func newAnalysisFixture(t *testing.T) (*AnalysisRepository, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&model.AnalysisRecord{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewAnalysisRepository(db), db
}

func TestAnalysisRepository_ListNewestFirst(t *testing.T) {
	repo, _ := newAnalysisFixture(t)

	names := []string{"first.txt", "second.txt", "third.txt"}
	for _, name := range names {
		record := &model.AnalysisRecord{UserID: 1, Filename: name, Report: "report for " + name}
		if err := repo.Create(record); err != nil {
			t.Fatalf("Create(%s) returned error: %v", name, err)
		}
	}

	records, err := repo.ListByUserID(1)
	if err != nil {
		t.Fatalf("ListByUserID returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"third.txt", "second.txt", "first.txt"} {
		if records[i].Filename != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, records[i].Filename)
		}
	}
	// Appending never rewrites earlier rows.
	if records[2].Report != "report for first.txt" {
		t.Fatalf("earlier record was mutated: %q", records[2].Report)
	}
}

func TestAnalysisRepository_ScopedToUser(t *testing.T) {
	repo, _ := newAnalysisFixture(t)

	if err := repo.Create(&model.AnalysisRecord{UserID: 1, Filename: "mine.txt", Report: "a"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := repo.Create(&model.AnalysisRecord{UserID: 2, Filename: "theirs.txt", Report: "b"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	records, err := repo.ListByUserID(1)
	if err != nil {
		t.Fatalf("ListByUserID returned error: %v", err)
	}
	if len(records) != 1 || records[0].Filename != "mine.txt" {
		t.Fatalf("listing must only return the user's own records, got %+v", records)
	}

	other, err := repo.GetByIDAndUserID(records[0].ID, 2)
	if err != nil {
		t.Fatalf("GetByIDAndUserID returned error: %v", err)
	}
	if other != nil {
		t.Fatalf("a record must not be readable under another user's id")
	}
}

func TestAnalysisRepository_LatestByFilename(t *testing.T) {
	repo, _ := newAnalysisFixture(t)

	for _, report := range []string{"old report", "new report"} {
		if err := repo.Create(&model.AnalysisRecord{UserID: 1, Filename: "lease.txt", Report: report}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	record, err := repo.LatestByFilename(1, "lease.txt")
	if err != nil {
		t.Fatalf("LatestByFilename returned error: %v", err)
	}
	if record == nil || record.Report != "new report" {
		t.Fatalf("expected the most recent record, got %+v", record)
	}

	missing, err := repo.LatestByFilename(1, "unknown.txt")
	if err != nil {
		t.Fatalf("LatestByFilename returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("an unknown filename must yield nil, got %+v", missing)
	}
}
