package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetOrCreatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "agent_id.txt")

	id := GetOrCreate(path)
	if !strings.HasPrefix(id, prefix+"-") {
		t.Fatalf("id = %q, want %s- prefix", id, prefix)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("id file not written: %v", err)
	}
	if string(data) != id {
		t.Errorf("file holds %q, returned %q", data, id)
	}

	if again := GetOrCreate(path); again != id {
		t.Errorf("second call returned %q, want %q", again, id)
	}
}

func TestGetOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent_id.txt")
	if err := os.WriteFile(path, []byte("  INL-old-machine-dead \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if id := GetOrCreate(path); id != "INL-old-machine-dead" {
		t.Errorf("id = %q, want trimmed stored value", id)
	}
}

func TestGetOrCreateSurvivesUnwritablePath(t *testing.T) {
	// parent is a file, so neither mkdir nor write can succeed
	parent := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	id := GetOrCreate(filepath.Join(parent, "agent_id.txt"))
	if !strings.HasPrefix(id, prefix+"-") {
		t.Errorf("id = %q despite unwritable path", id)
	}
}

func TestGeneratedIDsDiffer(t *testing.T) {
	if generate() == generate() {
		t.Error("two generated ids collided")
	}
}
