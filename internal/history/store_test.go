package history

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/insightloom/internal/insight"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(created time.Time) *insight.Result {
	return &insight.Result{
		ID:            uuid.New(),
		DashboardName: "Financial Dashboard",
		Source:        "sales.csv",
		CreatedAt:     created,
		Lines:         []string{"**Revenue** averages around 5,000.00", "📊 summary"},
	}
}

func TestSaveAndGetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	run := sampleRun(time.Now())
	if err := s.Save(run); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(run.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != run.ID || got.DashboardName != run.DashboardName || got.Source != run.Source {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, run)
	}
	if !reflect.DeepEqual(got.Lines, run.Lines) {
		t.Fatalf("lines mismatch: %v vs %v", got.Lines, run.Lines)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		run := sampleRun(base.Add(time.Duration(i) * time.Hour))
		ids = append(ids, run.ID)
		if err := s.Save(run); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	got, err := s.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}
	if got[0].ID != ids[2] || got[2].ID != ids[0] {
		t.Fatalf("runs not newest-first: %v", got)
	}

	limited, err := s.List(2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != ids[2] {
		t.Fatalf("limit not honored: %v", limited)
	}
}

func TestGetUnknownID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	run := sampleRun(time.Now())
	if err := s.Save(run); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(run.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(run.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(run.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	run := sampleRun(time.Now())
	if err := s.Save(run); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(run); err == nil {
		t.Fatalf("expected primary key violation on duplicate save")
	}
}
