package sqlite

import (
	"testing"
)

func TestMigrateUp_AppliesSchema(t *testing.T) {
	t.Parallel()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v; want nil", err)
	}

	for _, table := range []string{
		"user_account", "project", "prompt", "chat_session", "message", "activity_event",
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not created: %v", table, err)
		}
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	t.Parallel()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp() error = %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp() error = %v; want nil (idempotent)", err)
	}

	v, err := MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v", err)
	}
	if v != 1 {
		t.Errorf("MigrationVersion() = %d; want 1", v)
	}
}

func TestMigrationVersion_EmptyDB(t *testing.T) {
	t.Parallel()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	v, err := MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v", err)
	}
	if v != 0 {
		t.Errorf("MigrationVersion() = %d on empty db; want 0", v)
	}
}

func TestVersionFromFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want int
	}{
		{"001_init_schema.up.sql", 1},
		{"042_add_index.up.sql", 42},
		{"garbage.up.sql", 0},
	}
	for _, tc := range cases {
		if got := versionFromFilename(tc.name); got != tc.want {
			t.Errorf("versionFromFilename(%q) = %d; want %d", tc.name, got, tc.want)
		}
	}
}
