package preview

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kk-code-lab/rtab/internal/textutil"
)

// commandBuilder is overridden in tests.
var commandBuilder = exec.Command

// CommandPreviewer pipes a file through an external summariser such as
// ["head", "-n", "40"]. The path is appended as the last argument.
type CommandPreviewer struct {
	Argv     []string
	TabWidth int
}

// Preview runs the summariser and returns its bounded stdout. Files larger
// than limits.MaxBytes are rejected before the command starts.
func (p CommandPreviewer) Preview(path string, limits Limits) ([]string, error) {
	if len(p.Argv) == 0 {
		return nil, &ContentError{Kind: FailRead, Path: path, Err: errors.New("no preview command configured")}
	}
	if limits.MaxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &ContentError{Kind: FailRead, Path: path, Err: err}
		}
		if info.Size() > limits.MaxBytes {
			return nil, &ContentError{Kind: FailTooLarge, Path: path}
		}
	}

	args := append(append([]string(nil), p.Argv[1:]...), path)
	cmd := commandBuilder(p.Argv[0], args...)
	out := &boundedBuffer{limit: limits.MaxBytes}
	cmd.Stdout = out
	cmd.Stdin = nil
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		previewLog.Debug("preview_command_failed", "argv", p.Argv, "path", path, "error", err)
		return nil, &ContentError{Kind: FailRead, Path: path, Err: fmt.Errorf("%s: %w", p.Argv[0], err)}
	}

	tabWidth := p.TabWidth
	if tabWidth <= 0 {
		tabWidth = textutil.DefaultTabWidth
	}
	return splitDisplayLines(out.String(), tabWidth, limits.MaxLines), nil
}

// boundedBuffer keeps the first limit bytes written and discards the rest.
type boundedBuffer struct {
	buf   bytes.Buffer
	limit int64
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if b.limit > 0 {
		room := b.limit - int64(b.buf.Len())
		if room <= 0 {
			return n, nil
		}
		if int64(len(p)) > room {
			p = p[:room]
		}
	}
	b.buf.Write(p)
	return n, nil
}

func (b *boundedBuffer) String() string { return b.buf.String() }
