package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qed-tools/fabric-atlas/pkg/runtime/terminal/export"
)

type OrganizeCmd struct {
	configPath string
	reporter   *export.Reporter
}

func NewOrganizeCmd(reporter *export.Reporter) *cobra.Command {
	oc := &OrganizeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Archive pending reports into buyer folders without drafting emails",
		RunE:  oc.run,
	}

	cmd.Flags().StringVarP(&oc.configPath, "config", "c", "", "Path to the master configuration file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (oc *OrganizeCmd) run(cmd *cobra.Command, args []string) error {
	pipeline, db, err := newPipeline(oc.configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	summary, err := pipeline.Organize(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return oc.reporter.Handle(summary)
}
