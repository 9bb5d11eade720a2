package launch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"codelaunch/internal/errors"
)

// DetachedStarter runs the command in its own session with no standard
// streams attached. The launcher never waits on the child; a background
// goroutine reaps it so no zombie is left behind.
type DetachedStarter struct{}

// Start implements Starter.
func (DetachedStarter) Start(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// DryRunStarter prints the command line instead of running it.
type DryRunStarter struct {
	Out io.Writer
}

// Start implements Starter.
func (d DryRunStarter) Start(argv []string) error {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if strings.ContainsAny(arg, " \t") {
			arg = fmt.Sprintf("%q", arg)
		}
		quoted[i] = arg
	}
	_, err := fmt.Fprintln(out, strings.Join(quoted, " "))
	return err
}
