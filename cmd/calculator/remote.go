package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/internal/remote"
)

func newRemoteCommand() *cobra.Command {
	remoteCommand := &cobra.Command{
		Use:   "remote",
		Short: "Use a calculator server instead of the local history",
	}

	remoteCommand.AddCommand(&cobra.Command{
		Use:   "eval [--] <number> [<operator> <number>]...",
		Short: "Evaluate an expression on the server",
		Long:  "Evaluate an expression on the server and archive it there.\n" + expressionArgsHelp,
		Example: `  calculator remote eval 2 + 3,5
  calculator remote eval -- -2 X 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			format, err := cfg.Calculator.NumberFormat()
			if err != nil {
				return fmt.Errorf("cfg.Calculator.NumberFormat() > %w", err)
			}
			expr, err := calc.ParseTokens(args, format)
			if err != nil {
				return err
			}

			client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.RetryAttempts)
			defer func() {
				_ = client.Close()
			}()
			response, err := client.Evaluate(cmd.Context(), expr.CanonicalTokens())
			if err != nil {
				return fmt.Errorf("client.Evaluate() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", expr.Format(format), response.Display)
			return err
		},
	})

	orderFlag := OrderFlag(history.OrderAscending)
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "List calculations archived on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.RetryAttempts)
			defer func() {
				_ = client.Close()
			}()
			response, err := client.ListHistory(cmd.Context(), orderFlag.String())
			if err != nil {
				return fmt.Errorf("client.ListHistory() > %w", err)
			}
			if len(response.Records) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No calculations yet.")
				return err
			}
			for i, record := range response.Records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s = %s\n", i+1, record.Expression, record.DisplayResult)
			}
			return nil
		},
	}
	historyCommand.Flags().Var(&orderFlag, "order", "Order of the output. Options: asc, desc")
	remoteCommand.AddCommand(historyCommand)

	return remoteCommand
}
