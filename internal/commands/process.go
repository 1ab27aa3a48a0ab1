package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/config"
	"github.com/settled-dev/settled/internal/eventcsv"
	"github.com/settled-dev/settled/internal/replay"
)

func newProcessCommand() *cobra.Command {
	var output string
	var configPath string
	var auditPath string
	var format string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "process <events.csv>",
		Short: "Replay an event log and print the final account report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if format != "" {
				cfg.Format = format
			}
			if auditPath != "" {
				cfg.AuditLog = auditPath
			}
			if quiet {
				cfg.OnReject = string(replay.PolicySilent)
			}

			return runProcess(cmd, args[0], output, cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "report destination (- for stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to settled.yaml")
	cmd.Flags().StringVar(&auditPath, "audit-log", "", "append rejected events to this CSV file")
	cmd.Flags().StringVar(&format, "format", "", "input CSV dialect")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress rejection logging")

	return cmd
}

func runProcess(cmd *cobra.Command, inputPath, output string, cfg *config.Config) error {
	parser := eventcsv.DefaultRegistry().Get(cfg.Format)
	if parser == nil {
		return fmt.Errorf("unknown input format %q", cfg.Format)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	policy := replay.RejectPolicy(cfg.OnReject)
	svc := replay.NewService(parser, replay.Options{
		Policy:    policy,
		LogTo:     cmd.ErrOrStderr(),
		AuditPath: cfg.AuditLog,
	})

	stats, err := svc.Run(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output != "" && output != "-" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := eventcsv.WriteReport(out, svc.Summaries(), cfg.Precision); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if policy == replay.PolicyLog {
		fmt.Fprintf(cmd.ErrOrStderr(), "applied %d, rejected %d, malformed %d\n",
			stats.Applied, stats.Rejected, stats.Malformed)
	}
	return nil
}
