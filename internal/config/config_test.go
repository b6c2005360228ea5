package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  postgresDsn: "host=localhost"
session:
  secret: "s3cret"
accounts:
  - username: "admin"
    passwordHash: "$2a$10$abcdefghijklmnopqrstuv"
    displayName: "Admin"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if conf.Server.Listen != ":8000" {
		t.Fatalf("expected default listen got %q", conf.Server.Listen)
	}
	if conf.Session.TTLMinutes != 30 || conf.Session.WarningMinutes != 5 {
		t.Fatalf("expected default session windows got %+v", conf.Session)
	}
	if len(conf.Accounts) != 1 || conf.Accounts[0].Username != "admin" {
		t.Fatalf("expected one admin account got %+v", conf.Accounts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
