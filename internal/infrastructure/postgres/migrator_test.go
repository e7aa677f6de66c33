package postgres

import (
	"errors"
	"os"
	"regexp"
	"strconv"
	"testing"

	"github.com/golang-migrate/migrate/v4/source"
)

var migrationFileName = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)

// The file source rejects a directory where two files parse to the same
// version, which would make every server start fail. Guard the shipped set.
func TestMigrationsHaveUniqueVersions(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("reading migrations directory: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("migrations directory is empty")
	}

	seen := map[uint64]map[string]string{}
	for _, entry := range entries {
		m := migrationFileName.FindStringSubmatch(entry.Name())
		if m == nil {
			t.Errorf("unexpected file in migrations directory: %s", entry.Name())
			continue
		}
		version, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			t.Fatalf("parsing version of %s: %v", entry.Name(), err)
		}
		direction := m[2]
		if seen[version] == nil {
			seen[version] = map[string]string{}
		}
		if other, ok := seen[version][direction]; ok {
			t.Errorf("version %d has duplicate %s migrations: %s and %s", version, direction, other, entry.Name())
		}
		seen[version][direction] = entry.Name()
	}

	for version, directions := range seen {
		if directions["up"] == "" || directions["down"] == "" {
			t.Errorf("version %d must ship both an up and a down migration, got %v", version, directions)
		}
	}
}

func TestMigrationsSourceOpens(t *testing.T) {
	src, err := source.Open("file://migrations")
	if err != nil {
		t.Fatalf("opening migration source: %v", err)
	}
	defer src.Close()

	version, err := src.First()
	if err != nil {
		t.Fatalf("reading first migration: %v", err)
	}

	var versions []uint64
	for {
		versions = append(versions, uint64(version))
		next, err := src.Next(version)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			t.Fatalf("reading migration after %d: %v", version, err)
		}
		version = next
	}

	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Fatalf("migration versions = %v, want [1 2]", versions)
	}
}
