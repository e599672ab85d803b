package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Command copies through an external program. The text is staged in a
// temporary holder file whose full contents are piped to the program; the
// holder is removed afterwards.
type Command struct {
	// Argv is the copy program and its arguments. Empty means auto-detect.
	Argv []string
	// TempDir holds the staging file. Empty means os.TempDir().
	TempDir string

	lookPath func(string) (string, error)
}

// Write implements Writer.
func (c *Command) Write(ctx context.Context, text string) error {
	argv, err := c.resolve()
	if err != nil {
		return err
	}

	holder, err := os.CreateTemp(c.TempDir, "pdf2json-copy-*.txt")
	if err != nil {
		return fmt.Errorf("create holder: %w", err)
	}
	name := holder.Name()
	defer os.Remove(name)

	if _, err := holder.WriteString(text); err != nil {
		holder.Close()
		return fmt.Errorf("write holder: %w", err)
	}
	if _, err := holder.Seek(0, 0); err != nil {
		holder.Close()
		return fmt.Errorf("rewind holder: %w", err)
	}
	defer holder.Close()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = holder
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

func (c *Command) resolve() ([]string, error) {
	if len(c.Argv) > 0 {
		return c.Argv, nil
	}
	lookPath := c.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, argv := range candidates(runtime.GOOS) {
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, fmt.Errorf("%w: no copy command found", ErrUnavailable)
}

// candidates lists copy programs in order of preference for a platform.
// On Linux the native clipboard already drives wl-copy (only when
// WAYLAND_DISPLAY is set), xclip and xsel, so wl-copy goes first here
// unconditionally and the X11 tools are a last retry.
func candidates(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	}
	return [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
}
