package process

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if ms, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_SLEEP_MS")); err == nil {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	wd, _ := os.Getwd()
	os.Stdout.WriteString(strings.Join(args, " ") + "\n" + wd + "\n")
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 0
	}
	os.Exit(code)
}

func withHelperProcess(t *testing.T, exitCode int, sleep time.Duration, recorded *[]string) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		cmdArgs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cmdArgs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
			"HELPER_PROCESS_SLEEP_MS="+strconv.Itoa(int(sleep/time.Millisecond)),
		)
		return cmd
	}
	t.Cleanup(func() {
		commandBuilder = orig
	})
}

func TestRunForegroundSuccess(t *testing.T) {
	var recorded []string
	withHelperProcess(t, 0, 0, &recorded)

	var stdout bytes.Buffer
	dir := t.TempDir()
	inv := &Invoker{Stdout: &stdout}

	out, err := inv.Run(Request{Dir: dir, Argv: []string{"rm", "x", "y"}, Mode: Foreground})
	require.NoError(t, err)

	assert.Equal(t, []string{"rm", "x", "y"}, recorded)
	assert.Equal(t, 0, out.ExitCode)
	assert.NotZero(t, out.PID)
	assert.NoError(t, out.ExitErr())
	assert.Contains(t, stdout.String(), "rm x y")
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), resolved)
}

func TestRunForegroundNonZeroExitIsNotAnError(t *testing.T) {
	withHelperProcess(t, 3, 0, nil)

	out, err := (&Invoker{}).Run(Request{Argv: []string{"false"}, Mode: Foreground})
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)

	var exitErr *ExitError
	require.True(t, errors.As(out.ExitErr(), &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "exit status 3")
}

func TestRunMissingProgramIsSpawnError(t *testing.T) {
	for _, mode := range []Mode{Foreground, Detached} {
		_, err := (&Invoker{}).Run(Request{Argv: []string{"rtab-no-such-program-xyz"}, Mode: mode})

		var spawnErr *SpawnError
		require.True(t, errors.As(err, &spawnErr), "mode %v: expected SpawnError, got %v", mode, err)
		assert.Equal(t, "rtab-no-such-program-xyz", spawnErr.Program)
		assert.ErrorIs(t, err, exec.ErrNotFound)
	}
}

func TestRunDetachedReturnsPromptly(t *testing.T) {
	withHelperProcess(t, 0, 2*time.Second, nil)

	start := time.Now()
	out, err := (&Invoker{}).Run(Request{Argv: []string{"sleepy"}, Mode: Detached})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), time.Second)
	assert.NotZero(t, out.PID)
	assert.NoError(t, out.ExitErr())
}

func TestRunEmptyArgv(t *testing.T) {
	_, err := (&Invoker{}).Run(Request{})
	var tmplErr *TemplateError
	assert.True(t, errors.As(err, &tmplErr))
}
