package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
	"github.com/sawyerbutton/Cyber-Cat/internal/sim"
)

// captureOutput redirects stdout while f runs and returns what it wrote.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// execute runs the root command with args and resets flag state after.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	t.Cleanup(func() {
		flagServer = ""
		flagToken = ""
		flagConfig = ""
		flagVerbose = false
		stateJSON = false
		historyKind = ""
		historyLimit = 20
	})

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// startSim brings up a scripted daemon on an ephemeral port.
func startSim(t *testing.T) *sim.Server {
	t.Helper()

	srv := sim.NewServer(sim.Options{})
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Stop(context.Background()) })
	return srv
}

func TestStateCommand(t *testing.T) {
	srv := startSim(t)

	// Point at a nonexistent config so defaults apply, then override the URL.
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	var err error
	output := captureOutput(func() {
		err = execute(t, "state", "--config", cfgPath, "--server", srv.URL())
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Sophie")
	assert.Contains(t, output, "Behavior:")
	assert.Contains(t, output, "idle")
}

func TestStateCommandJSON(t *testing.T) {
	srv := startSim(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	var err error
	output := captureOutput(func() {
		err = execute(t, "state", "--json", "--config", cfgPath, "--server", srv.URL())
	})
	require.NoError(t, err)

	assert.Contains(t, output, `"behavior"`)
	assert.Contains(t, output, `"energy"`)
}

func TestStateCommandUnreachable(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	err := execute(t, "state", "--config", cfgPath, "--server", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch state")
}

func TestInteractionCommands(t *testing.T) {
	srv := startSim(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	for _, name := range []string{"pet", "feed"} {
		var err error
		output := captureOutput(func() {
			err = execute(t, name, "--config", cfgPath, "--server", srv.URL())
		})
		require.NoError(t, err, name)
		assert.Contains(t, output, "Emotion:")
	}
}

func TestSpeakCommand(t *testing.T) {
	srv := startSim(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	var err error
	output := captureOutput(func() {
		err = execute(t, "speak", "hello", "there", "--config", cfgPath, "--server", srv.URL())
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Behavior:")
}

func TestSpeakCommandRequiresMessage(t *testing.T) {
	err := execute(t, "speak")
	assert.Error(t, err)
}

func TestHistoryDisabled(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("journal:\n  enabled: false\n"), 0o644))

	err := execute(t, "history", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestHistoryEmptyJournal(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	journalPath := filepath.Join(dir, "sophie.db")
	cfg := "journal:\n  enabled: true\n  path: " + journalPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var err error
	output := captureOutput(func() {
		err = execute(t, "history", "--config", cfgPath)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "No journal entries")
}

func TestInvalidServerURL(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	err := execute(t, "state", "--config", cfgPath, "--server", "not a url")
	assert.Error(t, err)
}

func TestPrintSnapshot(t *testing.T) {
	state := &pet.State{
		Emotion:                 pet.EmotionHappy,
		Behavior:                "run",
		Energy:                  85,
		Hunger:                  10,
		MinutesSinceInteraction: 3,
	}

	output := captureOutput(func() {
		printSnapshot("Sophie", state)
	})

	assert.Contains(t, output, "Sophie")
	assert.Contains(t, output, pet.EmotionHappy)
	assert.Contains(t, output, "run")
	assert.Contains(t, output, "85/100")
	assert.Contains(t, output, "3m ago")
}
