package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/osintbo/rastro/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// TestRunInitCmd tests init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Run("creates config and seed files", func(t *testing.T) {
		tmpDir := t.TempDir()

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", tmpDir})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		configPath := filepath.Join(tmpDir, config.ConfigFileName)
		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read generated config: %v", err)
		}
		if !strings.Contains(string(content), "provider") {
			t.Error("expected config template to document the provider option")
		}

		seedPath := filepath.Join(tmpDir, seedFileName)
		seedContent, err := os.ReadFile(seedPath)
		if err != nil {
			t.Fatalf("failed to read generated seed file: %v", err)
		}
		if !strings.Contains(string(seedContent), "full_name") {
			t.Error("expected seed template to show the full_name field")
		}
	})

	t.Run("generated seed file parses as a valid seed", func(t *testing.T) {
		tmpDir := t.TempDir()

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", tmpDir})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		seed, err := config.LoadSeedFile(filepath.Join(tmpDir, seedFileName))
		if err != nil {
			t.Fatalf("generated seed file failed to load: %v", err)
		}
		if len(seed.Subjects) == 0 {
			t.Error("expected generated seed file to contain example subjects")
		}
		if seed.Skipped != 0 {
			t.Errorf("expected no skipped records in template, got %d", seed.Skipped)
		}
	})

	t.Run("generated config template parses as YAML", func(t *testing.T) {
		content, err := initTemplates.ReadFile("templates/rastro.yaml")
		if err != nil {
			t.Fatalf("failed to read embedded template: %v", err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			t.Fatalf("config template is not valid YAML: %v", err)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		tmpDir := t.TempDir()
		existing := filepath.Join(tmpDir, config.ConfigFileName)
		if err := os.WriteFile(existing, []byte("provider: google\n"), 0o600); err != nil {
			t.Fatalf("failed to create existing file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", tmpDir})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error when file exists without --force")
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		tmpDir := t.TempDir()
		existing := filepath.Join(tmpDir, config.ConfigFileName)
		if err := os.WriteFile(existing, []byte("stale"), 0o600); err != nil {
			t.Fatalf("failed to create existing file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", tmpDir, "-f"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(existing)
		if err != nil {
			t.Fatalf("failed to read overwritten file: %v", err)
		}
		if string(content) == "stale" {
			t.Error("expected file to be overwritten with --force")
		}
	})
}
