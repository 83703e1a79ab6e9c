package termselect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// RunCommand runs a command attached to a pseudo terminal sized to the capture and decodes
// everything it prints into capture. Programs that only colorize a TTY behave as they would
// in a real terminal. Returns after the command exits.
func RunCommand(ctx context.Context, capture *Capture, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(capture.Rows()),
		Cols: uint16(capture.Cols()),
	})
	if err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	defer ptmx.Close()

	_, copyErr := io.Copy(capture, ptmx)
	// Linux reports EIO on the master once the child side closes
	if copyErr != nil && !errors.Is(copyErr, syscall.EIO) {
		_ = cmd.Wait()
		return fmt.Errorf("read %s output: %w", name, copyErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}
