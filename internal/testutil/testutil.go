// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// DefaultRedisURL is used by integration tests when REDIS_URL is unset.
const DefaultRedisURL = "redis://localhost:6379"

// RedisURL returns REDIS_URL or DefaultRedisURL.
func RedisURL() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}
	return DefaultRedisURL
}

// ProjectRoot returns the repository root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// OpenAPISpecPath returns the path of the OpenAPI document, honoring
// OPENAPI_SPEC_PATH when set.
func OpenAPISpecPath(t testing.TB) string {
	t.Helper()
	if path := os.Getenv("OPENAPI_SPEC_PATH"); path != "" {
		return path
	}
	root, err := ProjectRoot()
	if err != nil {
		t.Fatalf("resolve project root: %v", err)
	}
	return filepath.Join(root, "docs", "api", "openapi.yaml")
}
