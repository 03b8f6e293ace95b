package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const prefix = "INL"

// GetOrCreate returns the persistent agent id stored at path, creating and
// persisting a fresh one on first run. Persistence is best effort: if the
// file cannot be written the generated id is still returned and simply will
// not survive a restart. Identity problems never fail the agent.
func GetOrCreate(path string) string {
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	id := generate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		_ = os.WriteFile(path, []byte(id), 0o644)
	}
	return id
}

func generate() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%s-%s", prefix, hostname, suffix)
}
