package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blocksort/internal/cli"
)

// run invokes the CLI against a scratch working directory and returns
// (exit code, stdout, stderr).
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var out, errOut bytes.Buffer

	workDir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": t.TempDir()}

	full := append([]string{"blocksort", "--cwd", workDir}, args...)
	code := cli.Run(&out, &errOut, full, env)

	return code, out.String(), errOut.String()
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	code, out, _ := run(t, "--help")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	for _, want := range []string{"verify", "bench", "gen"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	code, _, errOut := run(t, "frobnicate")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if !strings.Contains(errOut, "unknown command") {
		t.Errorf("stderr missing unknown-command message:\n%s", errOut)
	}
}

func TestRunVerifySmall(t *testing.T) {
	t.Parallel()

	code, out, errOut := run(t, "verify", "--size", "2000", "--buffered")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr:\n%s", code, errOut)
	}

	if !strings.Contains(out, "all input shapes verified") {
		t.Errorf("stdout missing success line:\n%s", out)
	}

	for _, name := range []string{"Pathological", "Random", "Equal"} {
		if !strings.Contains(out, name) {
			t.Errorf("stdout missing generator %q:\n%s", name, out)
		}
	}
}

func TestRunBenchWritesResults(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "results.json")

	code, out, errOut := run(t, "bench", "--max", "40000", "--step", "16384", "--out", outPath)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr:\n%s", code, errOut)
	}

	if !strings.Contains(out, "max rss:") {
		t.Errorf("stdout missing rss line:\n%s", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading results file: %v", err)
	}

	var report struct {
		Results []struct {
			Size int `json:"size"`
		} `json:"results"`
	}

	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("results file is not valid JSON: %v", err)
	}

	// Sizes 0, 16384, 32768.
	if len(report.Results) != 3 {
		t.Fatalf("results count = %d, want 3", len(report.Results))
	}
}

func TestRunGen(t *testing.T) {
	t.Parallel()

	code, out, errOut := run(t, "gen", "Ascending", "5")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr:\n%s", code, errOut)
	}

	if strings.TrimSpace(out) != "0 1 2 3 4" {
		t.Errorf("gen output = %q, want %q", strings.TrimSpace(out), "0 1 2 3 4")
	}
}

func TestRunGenUnknownGenerator(t *testing.T) {
	t.Parallel()

	code, _, errOut := run(t, "gen", "Bogus", "5")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if !strings.Contains(errOut, "unknown generator") {
		t.Errorf("stderr missing unknown-generator message:\n%s", errOut)
	}
}

func TestRunConfigFileChangesDefaults(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	workDir := t.TempDir()
	config := `{"verify_size": 300}` // keep the run quick

	if err := os.WriteFile(filepath.Join(workDir, cli.ConfigFileName), []byte(config), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	env := map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
	args := []string{"blocksort", "--cwd", workDir, "verify"}

	code := cli.Run(&out, &errOut, args, env)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr:\n%s", code, errOut.String())
	}

	if !strings.Contains(out.String(), "(size 300)") {
		t.Errorf("verify did not pick up config verify_size:\n%s", out.String())
	}
}
