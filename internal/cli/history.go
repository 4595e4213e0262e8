package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/at-ishikawa/calculator/internal/calc"
	"github.com/at-ishikawa/calculator/internal/history"
)

// WriteHistory prints records as an aligned table.
func WriteHistory(w io.Writer, records []history.Record, format calc.NumberFormat) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No calculations yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tEXPRESSION\tRESULT\tCREATED AT")
	for i, record := range records {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1,
			record.Expression.Format(format),
			format.Format(record.Result),
			record.CreatedAt.Local().Format(time.DateTime),
		)
	}
	return tw.Flush()
}

// Eval evaluates tokens typed on the command line, such as ["2", "+", "3,5"],
// archives a successful result and prints it.
func Eval(
	ctx context.Context,
	w io.Writer,
	args []string,
	format calc.NumberFormat,
	store history.Store,
	now time.Time,
) error {
	expr, err := calc.ParseTokens(args, format)
	if err != nil {
		return err
	}
	result, err := calc.Evaluate(expr)
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", expr.Format(format), err)
	}

	if err := store.Append(ctx, history.NewRecord(expr, result, now)); err != nil {
		return fmt.Errorf("store.Append() > %w", err)
	}
	_, err = fmt.Fprintf(w, "%s = %s\n", expr.Format(format), format.Format(result))
	return err
}
