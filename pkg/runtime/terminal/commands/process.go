package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qed-tools/fabric-atlas/pkg/runtime/terminal/export"
)

type ProcessCmd struct {
	configPath string
	reporter   *export.Reporter
}

func NewProcessCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProcessCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Evaluate pending reports, draft emails and archive files",
		RunE:  pc.run,
	}

	cmd.Flags().StringVarP(&pc.configPath, "config", "c", "", "Path to the master configuration file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (pc *ProcessCmd) run(cmd *cobra.Command, args []string) error {
	pipeline, db, err := newPipeline(pc.configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	summary, err := pipeline.Process(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return pc.reporter.Handle(summary)
}
