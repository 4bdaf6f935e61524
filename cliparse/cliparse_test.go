// cliparse/cliparse_test.go
package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// noEnvFile points -env-file at a path that does not exist
func noEnvFile(t *testing.T) []string {
	return []string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("DEFAULT_CAPACITY", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := ParseFlags(noEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.DefaultCapacity != 3 {
		t.Errorf("expected capacity 3, got %d", cfg.DefaultCapacity)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_CAPACITY", "3")

	args := append(noEnvFile(t), "-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-c", "0")
	cfg, err := ParseFlags(args)
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DefaultCapacity != 0 {
		t.Errorf("CLI should override env: expected capacity 0, got %d", cfg.DefaultCapacity)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_TYPE", "DATABASE_URL", "DEFAULT_CAPACITY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("ADMIN_KEY_SALT", "salt")

	cfg, err := ParseFlags(noEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:proxy-solver.db" {
		t.Errorf("unexpected default database URL %s", cfg.DatabaseURL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestParseFlags_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "ADMIN_KEY_SALT=from-dotenv\nPORT=7000\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// real env wins over the file
	t.Setenv("PORT", "7100")
	// register cleanup for the variable godotenv will set
	t.Setenv("ADMIN_KEY_SALT", "")
	os.Unsetenv("ADMIN_KEY_SALT")

	cfg, err := ParseFlags([]string{"-env-file", envFile})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AdminKeySalt != "from-dotenv" {
		t.Errorf("expected salt from .env, got %q", cfg.AdminKeySalt)
	}
	if cfg.Port != 7100 {
		t.Errorf("process env should win over .env: expected 7100, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", nil, nil},
		{"postgres without URL", map[string]string{"ADMIN_KEY_SALT": "s", "DATABASE_TYPE": "postgres"}, nil},
		{"unknown database type", map[string]string{"ADMIN_KEY_SALT": "s"}, []string{"-t", "mysql"}},
		{"bad port", map[string]string{"ADMIN_KEY_SALT": "s", "PORT": "abc"}, nil},
		{"negative capacity", map[string]string{"ADMIN_KEY_SALT": "s"}, []string{"-c", "-2"}},
		{"bad capacity env", map[string]string{"ADMIN_KEY_SALT": "s", "DEFAULT_CAPACITY": "lots"}, nil},
		{"bad log level", map[string]string{"ADMIN_KEY_SALT": "s"}, []string{"-log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ADMIN_KEY_SALT", "DATABASE_TYPE", "DATABASE_URL", "PORT", "DEFAULT_CAPACITY", "LOG_LEVEL"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(append(noEnvFile(t), tt.args...)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
