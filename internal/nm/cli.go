package nm

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Runner executes a command to completion and returns its stdout
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// CLI is a Source backed by the nmcli command line client
type CLI struct {
	bin            string // nmcli binary
	connectionType string // connection TYPE treated as a tunnel
	run            Runner
}

// NewCLI creates an nmcli adapter. A nil runner uses ExecRunner.
func NewCLI(bin, connectionType string, run Runner) *CLI {
	if run == nil {
		run = ExecRunner
	}
	return &CLI{
		bin:            bin,
		connectionType: connectionType,
		run:            run,
	}
}

// ListTunnels returns the names of all connections of the tunnel type, sorted
func (c *CLI) ListTunnels(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, c.bin, "-g", "NAME,TYPE", "connection", "show")
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	var names []string
	for _, fields := range parseTerse(out) {
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		if fields[1] == c.connectionType {
			names = append(names, fields[0])
		}
	}

	sort.Strings(names)
	return names, nil
}

// ListActive returns the names of all active connections
func (c *CLI) ListActive(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, c.bin, "-g", "NAME", "connection", "show", "--active")
	if err != nil {
		return nil, fmt.Errorf("failed to list active connections: %w", err)
	}

	var names []string
	for _, fields := range parseTerse(out) {
		if len(fields) > 0 && fields[0] != "" {
			names = append(names, fields[0])
		}
	}
	return names, nil
}

// SetActive brings the named connection up or down
func (c *CLI) SetActive(ctx context.Context, name string, up bool) error {
	verb := "down"
	if up {
		verb = "up"
	}
	if _, err := c.run(ctx, c.bin, "connection", verb, name); err != nil {
		return fmt.Errorf("failed to bring %s %s: %w", name, verb, err)
	}
	return nil
}

// parseTerse splits nmcli terse (-g) output into rows of fields.
// nmcli escapes ':' and '\' inside field values with a backslash.
func parseTerse(out []byte) [][]string {
	var rows [][]string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		rows = append(rows, splitTerse(line))
	}
	return rows
}

func splitTerse(line string) []string {
	var (
		fields []string
		field  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '\\' && i+1 < len(line):
			i++
			field.WriteByte(line[i])
		case ch == ':':
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}
	return append(fields, field.String())
}
