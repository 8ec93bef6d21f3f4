package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learnsubs/internal/config"
	"learnsubs/internal/testsupport"
)

var fixtureDir = filepath.Join("..", "..", "internal", "analysis", "testdata")

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("LEARNSUBS_FREQUENCY_DB", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd, cliCtx := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	if closeErr := cliCtx.close(); closeErr != nil {
		t.Fatalf("close command context: %v", closeErr)
	}
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func importFixtureFrequencies(t *testing.T, env *cliTestEnv) {
	t.Helper()
	out, stderr, err := runCLI(t, []string{"frequency", "import", filepath.Join(fixtureDir, "de_frequency.tsv"), "--lang", "de"}, env.configPath)
	if err != nil {
		t.Fatalf("frequency import: %v\n%s", err, stderr)
	}
	requireContains(t, out, "Imported 43 words into corpus de")
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
