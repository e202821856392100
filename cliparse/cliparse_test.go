package cliparse

import "testing"

func TestParseFlags(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("CREATOR_KEY_SALT", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "test.db", "--creator-salt", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "test.db" {
		t.Errorf("Expected database URL test.db, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_URL", "postgres://localhost/polls")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("CREATOR_KEY_SALT", "env-salt")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 9001 {
		t.Errorf("Expected port 9001, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected database type postgres, got %s", cfg.DatabaseType)
	}
	if cfg.CreatorKeySalt != "env-salt" {
		t.Errorf("Expected creator salt from env, got %s", cfg.CreatorKeySalt)
	}
}

func TestParseFlagsMissingDatabaseURL(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CREATOR_KEY_SALT", "salt")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for missing database URL")
	}
}

func TestParseFlagsMissingSalt(t *testing.T) {
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("CREATOR_KEY_SALT", "")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for missing creator key salt")
	}
}

func TestParseFlagsInvalidDatabaseType(t *testing.T) {
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("CREATOR_KEY_SALT", "salt")

	if _, err := ParseFlags([]string{"-t", "mongodb"}); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}
