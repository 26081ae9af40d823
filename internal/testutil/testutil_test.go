package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectRoot(t *testing.T) {
	root, err := ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Errorf("go.mod not found under %s: %v", root, err)
	}
}

func TestRedisURL(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	if got := RedisURL(); got != DefaultRedisURL {
		t.Errorf("RedisURL() = %q, want %q", got, DefaultRedisURL)
	}

	t.Setenv("REDIS_URL", "redis://cache:6380/1")
	if got := RedisURL(); got != "redis://cache:6380/1" {
		t.Errorf("RedisURL() = %q", got)
	}
}

func TestOpenAPISpecPath(t *testing.T) {
	t.Setenv("OPENAPI_SPEC_PATH", "")
	if _, err := os.Stat(OpenAPISpecPath(t)); err != nil {
		t.Errorf("spec not found: %v", err)
	}
}
