package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all e2e tests.
	tmp, err := os.MkdirTemp("", "resctl-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binaryPath = filepath.Join(tmp, "resctl")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build binary: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = os.RemoveAll(tmp)
	os.Exit(code)
}

// runBinary runs the resctl binary with the given args in dir ("" for
// the current directory). It returns stdout, stderr, and the exit code.
func runBinary(t *testing.T, dir string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("unexpected error running binary: %v", err)
		}
	}

	return outBuf.String(), errBuf.String(), exitCode
}

// writeFixture creates a file with the given content in the given directory.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// writeT16Fixture writes a minimal but complete T16 profile CSV into
// dir/data and returns the data directory.
func writeT16Fixture(t *testing.T, dir string) string {
	t.Helper()
	dataDir := filepath.Join(dir, "data")
	if err := os.Mkdir(dataDir, 0755); err != nil {
		t.Fatalf("creating data dir: %v", err)
	}

	cols := []string{
		"BBWIND_P", "BBSOLPV_P", "BBRORHYD_P",
		"BEWIND_P", "BESOLPV_P",
		"demand_BBEL_FIN", "demand_BEEL_FIN",
	}
	var b strings.Builder
	b.WriteString(strings.Join(cols, ","))
	b.WriteByte('\n')
	for i := 0; i < 16; i++ {
		b.WriteString("0.4,0.2,0.5,0.4,0.2,2110.1,1477.1\n")
	}
	writeFixture(t, dataDir, "T16.csv", b.String())
	return dataDir
}

func TestE2E_NoArgs_ExitsZero(t *testing.T) {
	_, stderr, exitCode := runBinary(t, "")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stderr, "Usage: resctl") {
		t.Errorf("expected usage text, got: %s", stderr)
	}
}

func TestE2E_UnknownCommand_ExitsTwo(t *testing.T) {
	_, _, exitCode := runBinary(t, "", "frobnicate")
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestE2E_Check_S1_WarnsMissingExcess(t *testing.T) {
	// S1 has no excess sink, which RM012 reports as a warning.
	// Warnings alone must not fail the run.
	_, stderr, exitCode := runBinary(t, t.TempDir(), "check", "--no-color", "S1")
	if exitCode != 0 {
		t.Errorf("expected exit code 0 for warnings only, got %d\nstderr: %s", exitCode, stderr)
	}
	if !strings.Contains(stderr, "RM012") {
		t.Errorf("expected RM012 warning in stderr, got: %s", stderr)
	}
}

func TestE2E_Check_JSONFormat(t *testing.T) {
	_, stderr, exitCode := runBinary(t, t.TempDir(), "check", "--format", "json", "S1")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}

	var diagnostics []map[string]interface{}
	if err := json.Unmarshal([]byte(stderr), &diagnostics); err != nil {
		t.Fatalf("stderr is not valid JSON: %v\nstderr: %s", err, stderr)
	}
	if len(diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic in JSON output")
	}

	d := diagnostics[0]
	for _, field := range []string{"model", "rule", "name", "severity", "message"} {
		if _, ok := d[field]; !ok {
			t.Errorf("JSON diagnostic missing required field %q", field)
		}
	}
	if d["model"] != "S1" {
		t.Errorf("expected model S1, got %v", d["model"])
	}
}

func TestE2E_Check_ConfigDisablesRule(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFixture(t, dir, ".resctl.yml", "rules:\n  excess-sink: false\n")

	_, stderr, exitCode := runBinary(t, dir, "check", "--no-color", "--config", configPath, "S1")
	if strings.Contains(stderr, "RM012") {
		t.Errorf("expected RM012 to be suppressed by config, got: %s", stderr)
	}
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}

func TestE2E_Check_MissingData_ExitsTwo(t *testing.T) {
	_, stderr, exitCode := runBinary(t, t.TempDir(), "check", "T16")
	if exitCode != 2 {
		t.Errorf("expected exit code 2 for missing dataset, got %d", exitCode)
	}
	if !strings.Contains(stderr, "T16") {
		t.Errorf("expected error to name T16, got: %s", stderr)
	}
}

func TestE2E_Check_T16_WithData(t *testing.T) {
	dir := t.TempDir()
	dataDir := writeT16Fixture(t, dir)

	_, stderr, exitCode := runBinary(t, dir, "check", "--no-color", "--data-dir", dataDir, "T16")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d\nstderr: %s", exitCode, stderr)
	}
}

func TestE2E_List(t *testing.T) {
	stdout, _, exitCode := runBinary(t, "", "list")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	for _, v := range []string{"S1", "T16", "T8784", "TI8784"} {
		if !strings.Contains(stdout, v) {
			t.Errorf("expected list output to contain %s, got: %s", v, stdout)
		}
	}
}

func TestE2E_Show_S1(t *testing.T) {
	stdout, _, exitCode := runBinary(t, t.TempDir(), "show", "S1")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stdout, "bus ") {
		t.Errorf("expected bus lines in output, got: %s", stdout)
	}
	if !strings.Contains(stdout, "demand") {
		t.Errorf("expected demand sink in output, got: %s", stdout)
	}
}

func TestE2E_Show_UnknownVariant(t *testing.T) {
	_, stderr, exitCode := runBinary(t, "", "show", "T17")
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(stderr, "unknown variant") {
		t.Errorf("expected unknown variant error, got: %s", stderr)
	}
}

func TestE2E_Dispatch_S1(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "results")

	stdout, stderr, exitCode := runBinary(t, dir, "dispatch", "--out", outDir, "S1")
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", exitCode, stderr)
	}

	if _, err := os.Stat(filepath.Join(outDir, "S1.csv")); err != nil {
		t.Errorf("expected S1.csv result file: %v", err)
	}
	if !strings.Contains(stdout, "RPT001") {
		t.Errorf("expected metric report on stdout, got: %s", stdout)
	}
}

func TestE2E_Dispatch_T16_WithData(t *testing.T) {
	dir := t.TempDir()
	dataDir := writeT16Fixture(t, dir)
	outDir := filepath.Join(dir, "results")

	stdout, stderr, exitCode := runBinary(t, dir, "dispatch",
		"--data-dir", dataDir, "--out", outDir, "--metrics", "total-cost,import-share", "T16")
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", exitCode, stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "T16.csv")); err != nil {
		t.Errorf("expected T16.csv result file: %v", err)
	}
	if !strings.Contains(stdout, "RPT006") {
		t.Errorf("expected import-share metric on stdout, got: %s", stdout)
	}
}

func TestE2E_Dispatch_UnknownMetric(t *testing.T) {
	_, stderr, exitCode := runBinary(t, t.TempDir(), "dispatch", "--metrics", "nope", "S1")
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(stderr, "unknown metric") {
		t.Errorf("expected unknown metric error, got: %s", stderr)
	}
}

func TestE2E_Export_S1(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "lp")

	_, stderr, exitCode := runBinary(t, dir, "export", "--out", outDir, "S1")
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\nstderr: %s", exitCode, stderr)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "S1.lp"))
	if err != nil {
		t.Fatalf("reading S1.lp: %v", err)
	}
	text := string(content)
	for _, want := range []string{"Minimize", "Subject To", "End"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected LP file to contain %q", want)
		}
	}
}

func TestE2E_HelpRule_List(t *testing.T) {
	stdout, _, exitCode := runBinary(t, "", "help", "rule")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stdout, "RM001") || !strings.Contains(stdout, "unique-labels") {
		t.Errorf("expected rule list with RM001, got: %s", stdout)
	}
}

func TestE2E_HelpRule_Show(t *testing.T) {
	stdout, _, exitCode := runBinary(t, "", "help", "rule", "RM001")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stdout, "# RM001: unique-labels") {
		t.Errorf("expected full RM001 doc, got: %s", stdout)
	}
}

func TestE2E_Init(t *testing.T) {
	dir := t.TempDir()

	_, _, exitCode := runBinary(t, dir, "init")
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}

	content, err := os.ReadFile(filepath.Join(dir, ".resctl.yml"))
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}
	if !strings.Contains(string(content), "unique-labels") {
		t.Errorf("expected generated config to list rules, got: %s", content)
	}

	// Second init must refuse to overwrite.
	_, stderr, exitCode := runBinary(t, dir, "init")
	if exitCode != 2 {
		t.Errorf("expected exit code 2 for existing config, got %d", exitCode)
	}
	if !strings.Contains(stderr, "already exists") {
		t.Errorf("expected already-exists error, got: %s", stderr)
	}
}

func TestE2E_Version(t *testing.T) {
	stdout, _, exitCode := runBinary(t, "", "version")
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.HasPrefix(stdout, "resctl ") {
		t.Errorf("expected version output to start with 'resctl ', got: %s", stdout)
	}
}
