package rotor

import (
	"context"
	"io"
	"log"

	"github.com/hegde-atri/wg-burrow/internal/nm"
	"github.com/hegde-atri/wg-burrow/internal/status"
	"github.com/hegde-atri/wg-burrow/internal/types"
)

// Command is the action selected by the command line argument
type Command int

const (
	CmdToggle Command = iota
	CmdNext
	CmdPrevious
	CmdStatus
)

// ParseCommand maps the optional first argument to a command.
// Anything unrecognized, including no argument, toggles.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CmdToggle
	}
	switch args[0] {
	case "next":
		return CmdNext
	case "previous":
		return CmdPrevious
	case "--status":
		return CmdStatus
	default:
		return CmdToggle
	}
}

// Store persists the current selection
type Store interface {
	Load(def string) string
	Save(name string) error
}

// Dispatcher runs one invocation of the status bar helper
type Dispatcher struct {
	src     nm.Source
	store   Store
	toggler *Toggler
	log     *log.Logger
}

// NewDispatcher wires a dispatcher. A nil logger discards output.
func NewDispatcher(src nm.Source, store Store, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{
		src:     src,
		store:   store,
		toggler: NewToggler(src, logger),
		log:     logger,
	}
}

// Run executes the command named by args and returns the payload to print.
// The only error is a failed active-connection query (wrapping nm.ErrQueryActive).
func (d *Dispatcher) Run(ctx context.Context, args []string) (status.Payload, error) {
	tunnels, err := d.src.ListTunnels(ctx)
	if err != nil {
		d.log.Printf("list tunnels: %v", err)
		tunnels = nil
	}
	if len(tunnels) == 0 {
		return status.NoTunnels(), nil
	}

	current := d.store.Load(tunnels[0])
	d.log.Printf("tunnels=%q current=%q", tunnels, current)

	switch cmd := ParseCommand(args); cmd {
	case CmdNext, CmdPrevious:
		dir := types.Forward
		if cmd == CmdPrevious {
			dir = types.Backward
		}
		rotated := Rotate(current, tunnels, dir)
		if err := d.store.Save(rotated); err != nil {
			d.log.Printf("save selection: %v", err)
		}
		return d.status(ctx, rotated)

	case CmdStatus:
		return d.status(ctx, current)

	default:
		state, err := d.toggler.Toggle(ctx, current)
		if err != nil {
			return status.Payload{}, err
		}
		return status.Render(current, state, status.StyleToggle), nil
	}
}

func (d *Dispatcher) status(ctx context.Context, name string) (status.Payload, error) {
	state, err := d.toggler.State(ctx, name)
	if err != nil {
		return status.Payload{}, err
	}
	return status.Render(name, state, status.StyleStatus), nil
}
