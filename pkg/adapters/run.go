package adapters

import (
	"github.com/qed-tools/fabric-atlas/pkg/models/api"
	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/qed-tools/fabric-atlas/pkg/models/store"
)

func MapRunSummaryDomainToStore(s domain.RunSummary) store.Run {
	return store.Run{
		ID:         s.RunID,
		StartedAt:  s.StartedAt,
		FilesFound: s.FilesFound,
		Flagged:    s.Flagged,
		Drafts:     s.Drafts,
		Reviewed:   s.Reviewed,
		Archived:   s.Archived,
		Skipped:    s.Skipped,
	}
}

func MapReportOutcomeDomainToStore(runID string, o domain.ReportOutcome) store.ReportEntry {
	reasons := make([]string, len(o.Verdict.Reasons))
	copy(reasons, o.Verdict.Reasons)
	return store.ReportEntry{
		RunID:          runID,
		SourceFile:     o.Record.SourcePath,
		Buyer:          o.Record.Buyer,
		Supplier:       o.Record.Supplier,
		Consignment:    o.Record.Consignment,
		Style:          o.Record.Style,
		Color:          o.Record.Color,
		Rolls:          o.Record.Rolls,
		InspectionDate: o.Record.InspectionDate,
		Result:         o.Record.Result,
		Reasons:        reasons,
		Flagged:        o.Flagged,
		Disposition:    string(o.Disposition),
		ArchivePath:    o.ArchivePath,
	}
}

func MapRunStoreToApi(r store.Run) api.Run {
	return api.Run{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		FilesFound: r.FilesFound,
		Flagged:    r.Flagged,
		Drafts:     r.Drafts,
		Reviewed:   r.Reviewed,
		Archived:   r.Archived,
		Skipped:    r.Skipped,
	}
}

func MapReportEntryStoreToApi(e store.ReportEntry) api.ReportEntry {
	reasons := e.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return api.ReportEntry{
		RunID:          e.RunID,
		SourceFile:     e.SourceFile,
		Buyer:          e.Buyer,
		Supplier:       e.Supplier,
		Consignment:    e.Consignment,
		Style:          e.Style,
		Color:          e.Color,
		Rolls:          e.Rolls,
		InspectionDate: e.InspectionDate,
		Result:         e.Result,
		Reasons:        reasons,
		Flagged:        e.Flagged,
		Disposition:    e.Disposition,
		ArchivePath:    e.ArchivePath,
	}
}
