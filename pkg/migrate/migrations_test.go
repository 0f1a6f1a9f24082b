package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readSingleMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one migration matching %q, got %d", pattern, len(matches))
	}

	b, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read %s: %v", matches[0], err)
	}
	return string(b)
}

func TestInventoryRowsMigration(t *testing.T) {
	sql := readSingleMigration(t, "*_create_inventory_rows.sql")

	for _, want := range []string{
		"CREATE TABLE inventory_rows",
		"REFERENCES reports (id) ON DELETE CASCADE",
		"CHECK (in_use_by_employees >= 0)",
		"CHECK (broken >= 0)",
		"DROP TABLE IF EXISTS inventory_rows",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("inventory_rows migration missing %q", want)
		}
	}
}

func TestRacksMigration(t *testing.T) {
	sql := readSingleMigration(t, "*_create_racks.sql")

	for _, want := range []string{
		"CREATE TYPE device_type AS ENUM",
		"CREATE TABLE racks",
		"CREATE TABLE rack_devices",
		"REFERENCES racks (id) ON DELETE CASCADE",
		"CHECK (start_unit >= 1)",
		"DROP TYPE IF EXISTS device_type",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("racks migration missing %q", want)
		}
	}
}

func TestIssuesMigration(t *testing.T) {
	sql := readSingleMigration(t, "*_create_issues.sql")

	for _, want := range []string{
		"CREATE TYPE issue_kind AS ENUM ('issue', 'repair', 'recommendation')",
		"CREATE TYPE issue_status AS ENUM ('open', 'in_progress', 'resolved')",
		"status issue_status NOT NULL DEFAULT 'open'",
		"DROP TABLE IF EXISTS issues",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("issues migration missing %q", want)
		}
	}
}

func TestRecyclingMigration(t *testing.T) {
	sql := readSingleMigration(t, "*_create_recycling_entries.sql")

	for _, want := range []string{
		"CREATE TYPE recycling_material AS ENUM",
		"weight_lbs NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (weight_lbs >= 0)",
		"DROP TABLE IF EXISTS recycling_entries",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("recycling migration missing %q", want)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "001_bad_version.sql")
	if err := os.WriteFile(path, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected short version prefix to be rejected")
	}
}

func TestValidateDirRejectsMissingDownMarker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20260110090000_no_down.sql")
	if err := os.WriteFile(path, []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing Down marker to be rejected")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Pickup Column")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_pickup_column.sql") {
		t.Fatalf("unexpected filename %s", path)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration failed validation: %v", err)
	}
}
