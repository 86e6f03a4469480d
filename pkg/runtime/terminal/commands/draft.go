package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qed-tools/fabric-atlas/pkg/runtime/terminal/export"
)

type DraftCmd struct {
	configPath string
	reporter   *export.Reporter
}

func NewDraftCmd(reporter *export.Reporter) *cobra.Command {
	dc := &DraftCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Evaluate pending reports and write email drafts, leaving files in place",
		RunE:  dc.run,
	}

	cmd.Flags().StringVarP(&dc.configPath, "config", "c", "", "Path to the master configuration file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (dc *DraftCmd) run(cmd *cobra.Command, args []string) error {
	pipeline, db, err := newPipeline(dc.configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	summary, err := pipeline.Draft(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return dc.reporter.Handle(summary)
}
