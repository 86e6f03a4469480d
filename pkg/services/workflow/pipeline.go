// Package workflow runs the report processing pipeline: extract, evaluate,
// group, draft, archive, record.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qed-tools/fabric-atlas/pkg/adapters"
	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/qed-tools/fabric-atlas/pkg/models/store"
	"github.com/qed-tools/fabric-atlas/pkg/services/archive"
	"github.com/qed-tools/fabric-atlas/pkg/services/config"
	"github.com/qed-tools/fabric-atlas/pkg/services/dispatch"
	"github.com/qed-tools/fabric-atlas/pkg/services/extract"
	"github.com/qed-tools/fabric-atlas/pkg/services/rules"
	"github.com/qed-tools/fabric-atlas/pkg/store/duckdb/runs"
)

// Extractor reads one report workbook into a record.
type Extractor interface {
	Read(ctx context.Context, path string) (domain.ReportRecord, error)
}

// DraftWriter persists one email draft and returns the body path.
type DraftWriter interface {
	Write(draft domain.Draft) (string, error)
}

// FileMover performs the filesystem side of archiving.
type FileMover interface {
	Move(ctx context.Context, src string, dest domain.ArchivePath) error
	MoveToReview(ctx context.Context, src string) error
	CopyToReview(ctx context.Context, src string) error
	CleanupEmptyDirs(ctx context.Context, root string)
}

// Dependencies wires the pipeline's collaborators. The caller owns their
// lifecycles.
type Dependencies struct {
	Extractor Extractor
	Drafts    *dispatch.DraftBuilder
	Outbox    DraftWriter
	Mover     FileMover
	Ledger    runs.Store
	RuleSet   domain.RuleSet
	Paths     config.Paths
}

// Pipeline processes a batch of pending inspection reports. All state is
// per-run; a Pipeline can be reused across runs.
type Pipeline struct {
	deps Dependencies
}

func NewPipeline(deps Dependencies) *Pipeline {
	return &Pipeline{deps: deps}
}

type evaluation struct {
	record  domain.ReportRecord
	verdict domain.Verdict
	flagged bool
}

// Process executes a full run: evaluate every pending report, draft emails
// for flagged ones, copy standard PASS reports to manual review, archive
// all files and record the run in the ledger.
func (p *Pipeline) Process(ctx context.Context) (domain.RunSummary, error) {
	summary := p.newSummary()
	logger := zerolog.Ctx(ctx).With().Str("run_id", summary.RunID).Logger()
	ctx = logger.WithContext(ctx)

	evals, outcomes := p.loadAndEvaluate(ctx, &summary)

	flagged := flaggedReports(evals)
	summary.Flagged = len(flagged)
	if err := p.writeDrafts(ctx, flagged, &summary); err != nil {
		return summary, err
	}

	for _, ev := range evals {
		outcomes = append(outcomes, p.fileAway(ctx, ev, &summary))
	}

	p.deps.Mover.CleanupEmptyDirs(ctx, p.deps.Paths.Pending)

	if err := p.recordRun(ctx, summary, outcomes); err != nil {
		return summary, err
	}

	logger.Info().
		Int("files", summary.FilesFound).
		Int("flagged", summary.Flagged).
		Int("drafts", summary.Drafts).
		Int("archived", summary.Archived).
		Msg("run complete")
	return summary, nil
}

// Draft runs the email half of the pipeline only: flagged reports get
// drafts, standard PASS reports are copied to manual review. Files stay in
// place.
func (p *Pipeline) Draft(ctx context.Context) (domain.RunSummary, error) {
	summary := p.newSummary()
	evals, _ := p.loadAndEvaluate(ctx, &summary)

	flagged := flaggedReports(evals)
	summary.Flagged = len(flagged)
	if err := p.writeDrafts(ctx, flagged, &summary); err != nil {
		return summary, err
	}

	for _, ev := range evals {
		if ev.flagged {
			continue
		}
		if err := p.deps.Mover.CopyToReview(ctx, ev.record.SourcePath); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", ev.record.SourcePath).Msg("review copy failed")
			continue
		}
		summary.Reviewed++
	}
	return summary, nil
}

// Organize runs the archiving half of the pipeline only.
func (p *Pipeline) Organize(ctx context.Context) (domain.RunSummary, error) {
	summary := p.newSummary()
	evals, _ := p.loadAndEvaluate(ctx, &summary)

	for _, ev := range evals {
		p.moveToArchive(ctx, ev.record, &summary)
	}
	p.deps.Mover.CleanupEmptyDirs(ctx, p.deps.Paths.Pending)
	return summary, nil
}

func (p *Pipeline) newSummary() domain.RunSummary {
	return domain.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// loadAndEvaluate discovers, extracts and evaluates every pending report.
// Extraction and evaluation failures skip the record with a warning; they
// still show up in the ledger as skipped outcomes.
func (p *Pipeline) loadAndEvaluate(ctx context.Context, summary *domain.RunSummary) ([]evaluation, []domain.ReportOutcome) {
	logger := zerolog.Ctx(ctx)

	files, err := extract.ListReportFiles(p.deps.Paths.Pending)
	if err != nil {
		logger.Error().Err(err).Str("dir", p.deps.Paths.Pending).Msg("failed to list pending reports")
		return nil, nil
	}
	summary.FilesFound = len(files)
	if len(files) == 0 {
		logger.Warn().Str("dir", p.deps.Paths.Pending).Msg("no pending reports found")
		return nil, nil
	}

	var records []domain.ReportRecord
	var outcomes []domain.ReportOutcome
	for _, file := range files {
		record, err := p.deps.Extractor.Read(ctx, file)
		if err != nil {
			logger.Warn().Err(err).Str("file", filepath.Base(file)).Msg("skipping unreadable report")
			summary.Skipped++
			outcomes = append(outcomes, skippedOutcome(file))
			continue
		}
		records = append(records, record)
	}

	domain.SortRecords(records)

	var evals []evaluation
	for _, record := range records {
		verdict, err := rules.Evaluate(record, p.deps.RuleSet)
		if err != nil {
			logger.Warn().Err(err).Str("file", filepath.Base(record.SourcePath)).Msg("skipping report: rule evaluation failed")
			summary.Skipped++
			outcomes = append(outcomes, skippedOutcome(record.SourcePath))
			continue
		}
		evals = append(evals, evaluation{
			record:  record,
			verdict: verdict,
			flagged: record.Failed() || verdict.NeedsAttention,
		})
	}
	return evals, outcomes
}

func flaggedReports(evals []evaluation) []domain.FlaggedReport {
	var flagged []domain.FlaggedReport
	for _, ev := range evals {
		if ev.flagged {
			flagged = append(flagged, domain.FlaggedReport{Record: ev.record, Verdict: ev.verdict})
		}
	}
	return flagged
}

func (p *Pipeline) writeDrafts(ctx context.Context, flagged []domain.FlaggedReport, summary *domain.RunSummary) error {
	if len(flagged) == 0 {
		zerolog.Ctx(ctx).Info().Msg("no critical reports; nothing to draft")
		return nil
	}

	groups := dispatch.Group(flagged)
	for _, key := range groups.Keys() {
		if key.Buyer == "" || key.Supplier == "" {
			zerolog.Ctx(ctx).Warn().
				Str("buyer", key.Buyer).
				Str("supplier", key.Supplier).
				Msg("drafting for group with empty buyer or supplier")
		}
	}

	drafts, err := p.deps.Drafts.Build(groups)
	if err != nil {
		return fmt.Errorf("build drafts: %w", err)
	}
	for _, draft := range drafts {
		path, err := p.deps.Outbox.Write(draft)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("buyer", draft.Key.Buyer).Msg("failed to write draft")
			continue
		}
		summary.Drafts++
		zerolog.Ctx(ctx).Info().Str("to", draft.To).Str("draft", path).Msg("draft created")
	}
	return nil
}

// fileAway copies standard PASS reports to manual review and then moves the
// file to its archive destination.
func (p *Pipeline) fileAway(ctx context.Context, ev evaluation, summary *domain.RunSummary) domain.ReportOutcome {
	if !ev.flagged {
		if err := p.deps.Mover.CopyToReview(ctx, ev.record.SourcePath); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", ev.record.SourcePath).Msg("review copy failed")
		} else {
			summary.Reviewed++
		}
	}

	disposition, archivePath := p.moveToArchive(ctx, ev.record, summary)
	return domain.ReportOutcome{
		Record:      ev.record,
		Verdict:     ev.verdict,
		Flagged:     ev.flagged,
		Disposition: disposition,
		ArchivePath: archivePath,
	}
}

// moveToArchive computes the destination and moves the file. Reports whose
// metadata cannot produce a safe path are routed to manual review instead
// of being misfiled.
func (p *Pipeline) moveToArchive(ctx context.Context, record domain.ReportRecord, summary *domain.RunSummary) (domain.Disposition, string) {
	logger := zerolog.Ctx(ctx)

	dest, err := archive.BuildPath(record, p.deps.Paths.Archive)
	if err != nil {
		var incomplete *archive.IncompleteMetadataError
		if errors.As(err, &incomplete) {
			logger.Warn().Err(err).Str("file", filepath.Base(record.SourcePath)).Msg("incomplete metadata; routing to review")
			if mvErr := p.deps.Mover.MoveToReview(ctx, record.SourcePath); mvErr != nil {
				logger.Error().Err(mvErr).Str("file", record.SourcePath).Msg("failed to route to review")
				summary.Skipped++
				return domain.DispositionSkipped, ""
			}
			summary.Reviewed++
			return domain.DispositionReview, ""
		}
		logger.Error().Err(err).Str("file", record.SourcePath).Msg("failed to build archive path")
		summary.Skipped++
		return domain.DispositionSkipped, ""
	}

	if err := p.deps.Mover.Move(ctx, record.SourcePath, dest); err != nil {
		logger.Error().Err(err).Str("file", record.SourcePath).Msg("archive move failed")
		summary.Skipped++
		return domain.DispositionSkipped, ""
	}
	summary.Archived++
	return domain.DispositionArchived, dest.Full()
}

func (p *Pipeline) recordRun(ctx context.Context, summary domain.RunSummary, outcomes []domain.ReportOutcome) error {
	entries := make([]store.ReportEntry, 0, len(outcomes))
	for _, o := range outcomes {
		entries = append(entries, adapters.MapReportOutcomeDomainToStore(summary.RunID, o))
	}
	if err := p.deps.Ledger.RecordRun(ctx, adapters.MapRunSummaryDomainToStore(summary), entries); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func skippedOutcome(file string) domain.ReportOutcome {
	return domain.ReportOutcome{
		Record:      domain.ReportRecord{SourcePath: file},
		Disposition: domain.DispositionSkipped,
	}
}
