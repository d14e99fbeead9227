package apt

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a list command and returns its standard output as text.
// The command is the only operation in this package that may block; timeout
// and cancellation policy belong to the caller's environment, not here.
type Runner interface {
	Run(command, target string) (string, error)
}

// ExecRunner runs commands through the local shell, or over ssh when a
// user@host target is given.
type ExecRunner struct {
	Shell string // defaults to "sh"
	SSH   string // defaults to "ssh"
}

func (r ExecRunner) Run(command, target string) (string, error) {
	var cmd *exec.Cmd
	if target != "" {
		ssh := r.SSH
		if ssh == "" {
			ssh = "ssh"
		}
		cmd = exec.Command(ssh, target, command)
	} else {
		shell := r.Shell
		if shell == "" {
			shell = "sh"
		}
		cmd = exec.Command(shell, "-c", command)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("run %q: %w: %s", command, err, firstLine(msg))
		}
		return "", fmt.Errorf("run %q: %w", command, err)
	}
	return stdout.String(), nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
