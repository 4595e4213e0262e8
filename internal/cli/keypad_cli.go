package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/internal/keypad"
)

const keypadHelp = `Type keys and press enter, for example "12,5+3=".
  0-9     digits
  %c       decimal separator
  + - X / operators (* and x also multiply)
  =       evaluate
  C       clear
Commands: history, help, quit`

// KeypadCLI drives a keypad session from a terminal.
type KeypadCLI struct {
	*InteractiveCLI
	session *keypad.Session
	store   history.Store
	format  calc.NumberFormat
}

func NewKeypadCLI(
	stdin io.Reader,
	stdout io.Writer,
	format calc.NumberFormat,
	errorText string,
	store history.Store,
	opts ...keypad.Option,
) *KeypadCLI {
	return &KeypadCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        keypad.NewSession(format, errorText, store, opts...),
		store:          store,
		format:         format,
	}
}

// Start prints the help and the initial display, then runs the session loop.
func (cli *KeypadCLI) Start(ctx context.Context) error {
	_, _ = fmt.Fprintf(cli.stdoutWriter, keypadHelp+"\n", cli.format.Separator)
	cli.printDisplay()
	return cli.Run(ctx, cli)
}

// Session handles one line of input.
func (cli *KeypadCLI) Session(ctx context.Context) error {
	_, _ = fmt.Fprint(cli.stdoutWriter, "> ")
	line, err := cli.readLine()
	if err != nil {
		return err
	}

	switch line {
	case "":
		return nil
	case "quit", "exit":
		return errEnd
	case "help":
		_, _ = fmt.Fprintf(cli.stdoutWriter, keypadHelp+"\n", cli.format.Separator)
		return nil
	case "history":
		records, err := cli.store.List(ctx)
		if err != nil {
			return fmt.Errorf("store.List() > %w", err)
		}
		return WriteHistory(cli.stdoutWriter, history.Sorted(records, history.OrderAscending), cli.format)
	}

	events, err := keypad.ParseKeys(line, cli.format.Separator)
	if err != nil {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, err.Error())
		return nil
	}
	if err := cli.session.HandleAll(ctx, events); err != nil {
		return fmt.Errorf("session.HandleAll() > %w", err)
	}
	cli.printDisplay()
	return nil
}

func (cli *KeypadCLI) printDisplay() {
	if pending := cli.session.Pending(); len(pending) > 0 {
		_, _ = cli.faint.Fprintln(cli.stdoutWriter, pending.Format(cli.format))
	}
	if cli.session.Errored() {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, cli.session.Display())
		return
	}
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, cli.session.Display())
}
