package cli

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	// An explicit path that does not exist is an error; fall back to
	// defaults only when no path was given.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Fatalf("explicit missing config error = %v, want INVALID_CONFIG", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("fallback backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
dump_path = "/data/runs"
dump_suffix = ".prod"

[cache]
backend = "redis"
redis_addr = "cache.internal:6379"

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DumpPath != "/data/runs" || cfg.DumpSuffix != ".prod" {
		t.Errorf("dump settings = %q, %q", cfg.DumpPath, cfg.DumpSuffix)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Archive.Database != appName {
		t.Errorf("archive database = %q, want %q", cfg.Archive.Database, appName)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "dump_path = [unclosed"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad suffix", "dump_suffix = \"a/b\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig accepted %q", tc.content)
			}
		})
	}
}

func TestParsePairArgs(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    [][2]int
		wantErr bool
	}{
		{"empty", nil, nil, false},
		{"single pair", []string{"0", "1"}, [][2]int{{0, 1}}, false},
		{"two pairs", []string{"0", "1", "4", "2"}, [][2]int{{0, 1}, {4, 2}}, false},
		{"spaces tolerated", []string{" 3", "5 "}, [][2]int{{3, 5}}, false},
		{"odd count", []string{"0", "1", "2"}, nil, true},
		{"non-integer", []string{"0", "x"}, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePairArgs(tc.raw)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parsePairArgs(%v) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
			}
			if err != nil {
				if !apperrors.Is(err, apperrors.ErrCodeInvalidPair) {
					t.Errorf("error code = %v, want INVALID_PAIR", apperrors.GetCode(err))
				}
				return
			}
			if len(got) != len(tc.want) {
				t.Fatalf("parsePairArgs(%v) = %v, want %v", tc.raw, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("pair %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
