package storage

import (
	"errors"
	"testing"
	"time"

	"classenum/internal/config"
	"classenum/internal/domain"
)

func sampleIndex() *domain.Index {
	results := []domain.PackageResult{
		{
			Package: "com.example",
			Classes: []*domain.ClassHandle{
				{Name: "com.example.A", MajorVersion: 61, SuperName: "java.lang.Object"},
				{Name: "com.example.B", MajorVersion: 61, Interfaces: []string{"java.lang.Runnable"}},
			},
		},
		{Package: "com.broken", Classes: nil, Err: errors.New("can't load class com.broken.X")},
		{Package: "com.empty", Classes: []*domain.ClassHandle{}},
	}
	return domain.NewIndex(results, 1500*time.Millisecond, 4, []string{"build/classes"})
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONStorage(cfg)

	if _, err := st.Load(); err == nil {
		t.Error("expected error loading before any save")
	}

	if err := st.Save(sampleIndex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index.Meta.TotalPackages != 3 || index.Meta.TotalClasses != 2 || index.Meta.FailedPackages != 1 {
		t.Errorf("unexpected meta: %+v", index.Meta)
	}
	if index.Packages[1].Success() {
		t.Error("failed package should keep its error after loading")
	}
	if got := index.Packages[0].Classes[1].Interfaces; len(got) != 1 || got[0] != "java.lang.Runnable" {
		t.Errorf("unexpected interfaces: %v", got)
	}
}

func TestOpen(t *testing.T) {
	cfg := config.New()
	st, err := Open(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := st.(*JSONStorage); !ok {
		t.Errorf("expected JSONStorage, got %T", st)
	}

	cfg.Flags.Store = "s3"
	if _, err := Open(cfg); err == nil {
		t.Error("expected error for unknown store")
	}
}

func TestNewSQLStorage_UnsupportedDriver(t *testing.T) {
	if _, err := NewSQLStorage("sqlite", "file.db"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestDialect_Bind(t *testing.T) {
	query := "INSERT INTO t (a, b) VALUES (?, ?)"

	if got := dialects["mysql"].bind(query); got != query {
		t.Errorf("mysql should keep placeholders, got %s", got)
	}
	expected := "INSERT INTO t (a, b) VALUES ($1, $2)"
	if got := dialects["pgx"].bind(query); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestDialect_Schema(t *testing.T) {
	for driver, d := range dialects {
		stmts := d.schema()
		if len(stmts) != 2 {
			t.Errorf("%s: expected 2 statements, got %d", driver, len(stmts))
		}
	}
}
