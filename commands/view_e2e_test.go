//go:build e2e
// +build e2e

package commands

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-timeline-view/internal/testing/e2e"
	"github.com/penwyp/go-timeline-view/internal/testing/fixtures"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	binaryPath := filepath.Join(t.TempDir(), "go-timeline-view")
	output, err := exec.Command("go", "build", "-o", binaryPath, "../cmd").CombinedOutput()
	require.NoError(t, err, "Failed to build binary: %s", string(output))
	return binaryPath
}

func startViewer(t *testing.T, binary string, args ...string) *e2e.Session {
	t.Helper()
	home := t.TempDir()
	session, err := e2e.Start(e2e.Config{
		Command: binary,
		Args:    append([]string{"view", "--mouse=false", "--color=false"}, args...),
		Env:     []string{fmt.Sprintf("HOME=%s", home)},
		Rows:    30,
		Cols:    96,
		Timeout: 15 * time.Second,
	})
	require.NoError(t, err, "Failed to start viewer")
	t.Cleanup(session.Close)
	return session
}

func TestViewerStartsAndQuits(t *testing.T) {
	binary := buildBinary(t)
	events := farEvents(t)

	session := startViewer(t, binary, "-f", events)
	require.NoError(t, session.WaitForText("events.json  zoom 1x", 5*time.Second))
	require.NoError(t, session.WaitForText("? help  q quit", time.Second))

	require.NoError(t, session.Send("q"))
	require.NoError(t, session.WaitExit(5*time.Second))
	require.NoError(t, session.WaitForOutput("\x1b[?1049l", time.Second), "alternate screen is left on exit")
}

func TestViewerKeys(t *testing.T) {
	binary := buildBinary(t)
	events := farEvents(t)

	session := startViewer(t, binary, "-f", events, "--restore-state=false")
	require.NoError(t, session.WaitForText("zoom 1x", 5*time.Second))

	require.NoError(t, session.Send("+"))
	require.NoError(t, session.WaitForText("zoom 1.5x", 2*time.Second))

	require.NoError(t, session.Send("e"))
	require.NoError(t, session.WaitForText("expanded all gaps (1)", 2*time.Second))

	require.NoError(t, session.Send("?"))
	require.NoError(t, session.WaitForText("Timeline Viewer - Help", 2*time.Second))
	require.NoError(t, session.Send(e2e.KeyEsc))
	require.NoError(t, session.WaitForText("zoom 1.5x", 2*time.Second))

	require.NoError(t, session.Send("q"))
	require.NoError(t, session.WaitExit(5*time.Second))
}

func TestViewerReloadsChangedFile(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()
	gen := fixtures.NewEventFileGenerator(dir)
	path, err := gen.WriteJSON("plan.json", []fixtures.Record{fixtures.Span("first", 0, 2)})
	require.NoError(t, err)

	session := startViewer(t, binary, "-f", path)
	require.NoError(t, session.WaitForText("first", 5*time.Second))

	_, err = gen.WriteJSON("plan.json", []fixtures.Record{
		fixtures.Span("first", 0, 2),
		fixtures.Span("second", 3, 4),
	})
	require.NoError(t, err)
	require.NoError(t, session.WaitForText("second", 5*time.Second))

	require.NoError(t, session.Send("q"))
	require.NoError(t, session.WaitExit(5*time.Second))
}
