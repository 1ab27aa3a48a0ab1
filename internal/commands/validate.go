package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/eventcsv"
)

func newValidateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <events.csv>",
		Short: "Check an event log parses cleanly without replaying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "standard", "input CSV dialect")

	return cmd
}

func runValidate(cmd *cobra.Command, inputPath, format string) error {
	parser := eventcsv.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown input format %q", format)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	events, rowErrs, err := parser.Parse(f)
	if err != nil {
		return err
	}

	for _, re := range rowErrs {
		fmt.Fprintln(cmd.ErrOrStderr(), re.Error())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d events, %d malformed rows\n", len(events), len(rowErrs))
	if len(rowErrs) > 0 {
		return fmt.Errorf("%d malformed rows", len(rowErrs))
	}
	return nil
}
