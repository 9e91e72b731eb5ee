// Package shell implements the line-oriented command interpreter for a lot.
//
// Each input line is one command:
//
//	park <id> <bike|car|truck>
//	remove <id>          (alias: leave)
//	where <id>
//	avail
//	full
//	status
//	help
//	exit                 (alias: quit)
//
// Words are split shell-style, so ids containing spaces can be quoted.
// Lines starting with '#' are ignored.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/joshuapare/lotkit/internal/logger"
	"github.com/joshuapare/lotkit/lot"
	"github.com/joshuapare/lotkit/pkg/types"
)

// Allocator is the part of *lot.Lot the interpreter drives.
type Allocator interface {
	Park(v types.Vehicle) (types.Placement, error)
	Remove(id string) error
	Locate(id string) (types.Location, bool)
	Available() []types.FloorAvailability
	IsFull() bool
	Snapshot() lot.Snapshot
}

// Interpreter executes commands against an Allocator and writes results to out.
type Interpreter struct {
	lot Allocator
	out io.Writer
}

// New creates an interpreter.
func New(l Allocator, out io.Writer) *Interpreter {
	return &Interpreter{lot: l, out: out}
}

type command struct {
	args  int
	usage string
	help  string
	run   func(in *Interpreter, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"park":   {args: 2, usage: "park <id> <bike|car|truck>", help: "park a vehicle", run: (*Interpreter).park},
		"remove": {args: 1, usage: "remove <id>", help: "remove a parked vehicle", run: (*Interpreter).remove},
		"where":  {args: 1, usage: "where <id>", help: "show where a vehicle is parked", run: (*Interpreter).where},
		"avail":  {args: 0, usage: "avail", help: "show free spots per floor", run: (*Interpreter).avail},
		"full":   {args: 0, usage: "full", help: "report whether the lot is full", run: (*Interpreter).full},
		"status": {args: 0, usage: "status", help: "show every spot", run: (*Interpreter).status},
		"help":   {args: 0, usage: "help", help: "show this help", run: (*Interpreter).help},
	}
}

var aliases = map[string]string{
	"leave": "remove",
	"quit":  "exit",
}

// Exec runs a single command line. It reports quit=true for exit/quit.
func (in *Interpreter) Exec(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	words, err := shellwords.NewParser().Parse(line)
	if err != nil {
		return false, &types.Error{Kind: types.ErrKindInput, Msg: "parse command", Err: err}
	}
	if len(words) == 0 {
		return false, nil
	}

	name := strings.ToLower(words[0])
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if name == "exit" {
		return true, nil
	}

	cmd, ok := commands[name]
	if !ok {
		return false, types.Errorf(types.ErrKindInput, "unknown command %q (try help)", words[0])
	}
	args := words[1:]
	if len(args) != cmd.args {
		return false, types.Errorf(types.ErrKindInput, "usage: %s", cmd.usage)
	}
	return false, cmd.run(in, args)
}

// Run reads commands from r until EOF, exit, or ctx is cancelled. Command
// errors are printed and do not stop the loop. A non-empty prompt is written
// before each line is read.
func (in *Interpreter) Run(ctx context.Context, r io.Reader, prompt string) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt != "" {
			fmt.Fprint(in.out, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := in.Exec(scanner.Text())
		if err != nil {
			logger.Debug("command failed", "line", scanner.Text(), "err", err)
			fmt.Fprintf(in.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (in *Interpreter) park(args []string) error {
	kind, err := types.ParseVehicleKind(args[1])
	if err != nil {
		return err
	}
	v := types.Vehicle{ID: args[0], Kind: kind}

	p, err := in.lot.Park(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(in.out, "parked %s (%s) at floor %d, %s\n", v.ID, v.Kind, p.Floor, formatSpots(p.Spots))
	return nil
}

func (in *Interpreter) remove(args []string) error {
	if err := in.lot.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(in.out, "removed %s\n", args[0])
	return nil
}

func (in *Interpreter) where(args []string) error {
	loc, ok := in.lot.Locate(args[0])
	if !ok {
		return types.Errorf(types.ErrKindNotFound, "vehicle %q not found", args[0])
	}
	fmt.Fprintf(in.out, "%s is at floor %d, spot %d\n", args[0], loc.Floor, loc.Spot)
	return nil
}

func (in *Interpreter) avail([]string) error {
	for _, fa := range in.lot.Available() {
		fmt.Fprintf(in.out, "floor %d: %d/%d free\n", fa.Floor, fa.Available, fa.Capacity)
	}
	return nil
}

func (in *Interpreter) full([]string) error {
	if in.lot.IsFull() {
		fmt.Fprintln(in.out, "lot is full")
	} else {
		fmt.Fprintln(in.out, "lot has free spots")
	}
	return nil
}

func (in *Interpreter) status([]string) error {
	snap := in.lot.Snapshot()
	for _, fs := range snap.Floors {
		cells := make([]string, len(fs.Occupants))
		for i, id := range fs.Occupants {
			if id == "" {
				id = "."
			}
			cells[i] = id
		}
		fmt.Fprintf(in.out, "floor %d: [%s]\n", fs.Floor, strings.Join(cells, " "))
	}
	fmt.Fprintf(in.out, "%d vehicle(s) parked\n", len(snap.Placements))
	return nil
}

func (in *Interpreter) help([]string) error {
	for _, name := range []string{"park", "remove", "where", "avail", "full", "status", "help"} {
		cmd := commands[name]
		fmt.Fprintf(in.out, "  %-28s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(in.out, "  %-28s %s\n", "exit", "leave the shell")
	return nil
}

// formatSpots renders a contiguous run as "spot 3" or "spots 3-4".
func formatSpots(spots []int) string {
	switch len(spots) {
	case 0:
		return "no spots"
	case 1:
		return fmt.Sprintf("spot %d", spots[0])
	default:
		return fmt.Sprintf("spots %d-%d", spots[0], spots[len(spots)-1])
	}
}
