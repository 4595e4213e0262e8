package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/calculator/internal/cli"
)

func newKeypadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keypad",
		Short: "Start an interactive keypad session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			keypadCLI := cli.NewKeypadCLI(
				os.Stdin,
				cmd.OutOrStdout(),
				env.format,
				env.cfg.Calculator.ErrorText,
				env.store,
			)
			if err := keypadCLI.Start(ctx); err != nil {
				return fmt.Errorf("keypadCLI.Start() > %w", err)
			}
			return nil
		},
	}
}

// expressionArgsHelp explains how tokens are passed on the command line.
const expressionArgsHelp = `Operators are +, -, X and /. Quote * so the shell does not expand it.
Put -- before the expression when an operand is negative, otherwise -1 is
read as a flag.`

func newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [--] <number> [<operator> <number>]...",
		Short: "Evaluate an expression given as separate tokens, e.g. eval 2 + 3,5",
		Long:  "Evaluate an expression from left to right without precedence.\n" + expressionArgsHelp,
		Example: `  calculator eval 2 + 3,5
  calculator eval -- 4 - -1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.close()
			}()

			return cli.Eval(ctx, cmd.OutOrStdout(), args, env.format, env.store, time.Now())
		},
	}
}
