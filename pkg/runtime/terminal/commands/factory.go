package commands

import (
	"database/sql"
	"fmt"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/qed-tools/fabric-atlas/pkg/services/archive"
	"github.com/qed-tools/fabric-atlas/pkg/services/config"
	"github.com/qed-tools/fabric-atlas/pkg/services/dispatch"
	"github.com/qed-tools/fabric-atlas/pkg/services/extract"
	"github.com/qed-tools/fabric-atlas/pkg/services/workflow"
	"github.com/qed-tools/fabric-atlas/pkg/store/duckdb"
	"github.com/qed-tools/fabric-atlas/pkg/store/duckdb/runs"
)

const defaultLedgerPath = "fabric-atlas.db"

// newPipeline wires a pipeline from the master config file. The returned
// *sql.DB must be closed by the caller once the run is done.
func newPipeline(cfgPath string) (*workflow.Pipeline, *sql.DB, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config %q: %w", cfgPath, err)
	}

	fallback := domain.Recipients{
		Primary:   cfg.Email.DefaultPrimary,
		Secondary: cfg.Email.DefaultSecondary,
	}
	directory, err := config.NewRecipientDirectory(cfg.Email.RecipientsFile, fallback)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load recipient profiles: %w", err)
	}

	ledgerPath := cfg.Paths.Ledger
	if ledgerPath == "" {
		ledgerPath = defaultLedgerPath
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ledgerPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run ledger: %w", err)
	}
	ledger, err := runs.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create run store: %w", err)
	}

	pipeline := workflow.NewPipeline(workflow.Dependencies{
		Extractor: extract.NewReader(cfg.CellMap),
		Drafts:    dispatch.NewDraftBuilder(directory),
		Outbox:    dispatch.NewOutboxWriter(cfg.Paths.Outbox),
		Mover:     archive.NewMover(cfg.Paths.Review),
		Ledger:    ledger,
		RuleSet:   cfg.RuleSet(),
		Paths:     cfg.Paths,
	})

	return pipeline, db, nil
}
