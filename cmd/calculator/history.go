package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/calculator/internal/cli"
	"github.com/at-ishikawa/calculator/internal/history"
	"github.com/at-ishikawa/calculator/internal/report"
)

type OrderFlag history.Order

// Set implements pflag.Value.
func (o *OrderFlag) Set(v string) error {
	switch history.Order(v) {
	case history.OrderAscending, history.OrderDescending:
		*o = OrderFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, history.OrderAscending, history.OrderDescending)
	}
	return nil
}

// String implements pflag.Value.
func (o *OrderFlag) String() string {
	if o == nil {
		return ""
	}
	return string(*o)
}

// Type implements pflag.Value.
func (o *OrderFlag) Type() string {
	return "OrderFlag"
}

var (
	_ pflag.Value = (*OrderFlag)(nil)
)

func newHistoryCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Show or export archived calculations",
	}
	orderFlag := OrderFlag(history.OrderAscending)
	historyCommand.PersistentFlags().Var(&orderFlag, "order", "Order of the output. Options: asc, desc")

	listCommand := &cobra.Command{
		Use:   "list",
		Short: "List archived calculations",
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

			records, err := env.store.List(ctx)
			if err != nil {
				return fmt.Errorf("store.List() > %w", err)
			}
			return cli.WriteHistory(cmd.OutOrStdout(), history.Sorted(records, history.Order(orderFlag)), env.format)
		},
	}

	var generatePDF bool
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export archived calculations as a markdown report",
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

			exporter := report.NewExporter(env.store, env.format, env.cfg.Report.Template, env.cfg.Report.OutputDirectory)
			paths, err := exporter.Export(ctx, history.Order(orderFlag), generatePDF)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			for _, path := range paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	exportCommand.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the report to PDF")

	historyCommand.AddCommand(listCommand, exportCommand)
	return historyCommand
}
