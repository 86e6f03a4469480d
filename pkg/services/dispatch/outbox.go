package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/qed-tools/fabric-atlas/pkg/services/archive"
)

// OutboxWriter persists drafts to a directory: an .html file with the body
// and a .json sidecar with recipient, subject and attachment paths. Picking
// the drafts up into a mail client stays outside this tool.
type OutboxWriter struct {
	dir string
}

func NewOutboxWriter(dir string) *OutboxWriter {
	return &OutboxWriter{dir: dir}
}

type draftMeta struct {
	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Attachments []string `json:"attachments"`
	Body        string   `json:"body"`
}

// Write stores one draft and returns the path of the body file.
func (w *OutboxWriter) Write(draft domain.Draft) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create outbox dir: %w", err)
	}

	base := archive.Sanitize(draft.Key.Buyer) + "_" + archive.Sanitize(draft.Key.Supplier)
	if base == "_" {
		base = "draft"
	}

	bodyPath := filepath.Join(w.dir, base+".html")
	if err := os.WriteFile(bodyPath, []byte(draft.BodyHTML), 0o644); err != nil {
		return "", fmt.Errorf("write draft body: %w", err)
	}

	meta := draftMeta{
		To:          draft.To,
		Subject:     draft.Subject,
		Attachments: draft.Attachments,
		Body:        filepath.Base(bodyPath),
	}
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal draft metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, base+".json"), encoded, 0o644); err != nil {
		return "", fmt.Errorf("write draft metadata: %w", err)
	}

	return bodyPath, nil
}
