package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

type dashboard struct {
	TotalHabits          int `json:"total_habits"`
	HabitCompletionRate  int `json:"habit_completion_rate"`
	TotalCoughIncidents  int `json:"total_cough_incidents"`
	RecentCoughIncidents int `json:"recent_cough_incidents"`
	TopTriggers          []struct {
		Trigger string `json:"trigger"`
		Count   int    `json:"count"`
	} `json:"top_triggers"`
}

// TestEndToEndWorkflow drives a built habitlog binary against an isolated
// home directory. Build it first with `go build -o bin/habitlog ./cmd/habitlog`.
func TestEndToEndWorkflow(t *testing.T) {
	cliPath := binaryPath(t)

	for _, db := range []string{"habitlog.db", "habitlog.json"} {
		t.Run(db, func(t *testing.T) {
			env := isolatedEnv(t, db)

			out := runCmd(t, cliPath, env, "init")
			if !strings.Contains(out, "Initialized habitlog storage") {
				t.Fatalf("unexpected init output: %s", out)
			}

			runCmd(t, cliPath, env, "habit", "add", "Walk", "--category", "health")
			runCmd(t, cliPath, env, "habit", "add", "Read", "--category", "lifestyle")
			runCmd(t, cliPath, env, "habit", "mark", "walk", "--note", "30 min")

			runCmd(t, cliPath, env, "cough", "add", "-s", "6", "-t", "dust,cold air")
			runCmd(t, cliPath, env, "cough", "add", "-s", "3", "-t", "dust")

			var ds dashboard
			if err := json.Unmarshal([]byte(runCmd(t, cliPath, env, "dashboard", "--json")), &ds); err != nil {
				t.Fatalf("dashboard output is not JSON: %v", err)
			}
			if ds.TotalHabits != 2 || ds.HabitCompletionRate != 50 {
				t.Errorf("habits = %d, completion = %d%%", ds.TotalHabits, ds.HabitCompletionRate)
			}
			if ds.TotalCoughIncidents != 2 || ds.RecentCoughIncidents != 2 {
				t.Errorf("incidents = %d, recent = %d", ds.TotalCoughIncidents, ds.RecentCoughIncidents)
			}
			if len(ds.TopTriggers) != 2 || ds.TopTriggers[0].Trigger != "dust" || ds.TopTriggers[0].Count != 2 {
				t.Errorf("top triggers = %+v", ds.TopTriggers)
			}

			runCmd(t, cliPath, env, "habit", "delete", "Read", "--yes")
			out = runCmd(t, cliPath, env, "habit", "list")
			if strings.Contains(out, "Read") {
				t.Errorf("deleted habit still listed: %s", out)
			}

			out = runCmd(t, cliPath, env, "doctor")
			if !strings.Contains(out, "All diagnostics passed!") {
				t.Errorf("doctor reported problems: %s", out)
			}
		})
	}
}

func binaryPath(t *testing.T) string {
	binDir := os.Getenv("HABITLOG_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "habitlog")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Please build it first.", cliPath)
	}
	return cliPath
}

func isolatedEnv(t *testing.T, dbName string) []string {
	tempDir := t.TempDir()

	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "HABITLOG_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("HABITLOG_CONFIG_DIR=%s", filepath.Join(tempDir, "habitlog")),
		fmt.Sprintf("HABITLOG_DB=%s", filepath.Join(tempDir, "habitlog", dbName)),
	)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Dir = filepath.Dir(path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
