package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Mover performs the filesystem side of archiving: moving report files to
// their destinations, routing problem files to the review folder, and
// pruning empty directories left behind in the source tree.
type Mover struct {
	reviewDir string
}

func NewMover(reviewDir string) *Mover {
	return &Mover{reviewDir: reviewDir}
}

// Move relocates the file at src to its archive path, creating the
// destination folder as needed.
func (m *Mover) Move(ctx context.Context, src string, dest domain.ArchivePath) error {
	if err := os.MkdirAll(dest.Dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if err := moveFile(src, dest.Full()); err != nil {
		return fmt.Errorf("move %s: %w", filepath.Base(src), err)
	}
	zerolog.Ctx(ctx).Info().
		Str("file", filepath.Base(src)).
		Str("dest", dest.Full()).
		Msg("archived report")
	return nil
}

// MoveToReview relocates a file into the manual-review folder.
func (m *Mover) MoveToReview(ctx context.Context, src string) error {
	if err := os.MkdirAll(m.reviewDir, 0o755); err != nil {
		return fmt.Errorf("create review dir: %w", err)
	}
	if err := moveFile(src, filepath.Join(m.reviewDir, filepath.Base(src))); err != nil {
		return fmt.Errorf("move to review: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("file", filepath.Base(src)).Msg("routed to manual review")
	return nil
}

// CopyToReview copies a file into the manual-review folder, leaving the
// original in place so it can still be archived.
func (m *Mover) CopyToReview(ctx context.Context, src string) error {
	if err := os.MkdirAll(m.reviewDir, 0o755); err != nil {
		return fmt.Errorf("create review dir: %w", err)
	}
	if err := copyFile(src, filepath.Join(m.reviewDir, filepath.Base(src))); err != nil {
		return fmt.Errorf("copy to review: %w", err)
	}
	return nil
}

// CleanupEmptyDirs removes empty subdirectories under root, deepest first.
// The root itself is never removed.
func (m *Mover) CleanupEmptyDirs(ctx context.Context, root string) {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	// Deepest paths first so nested empties cascade.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err == nil {
			zerolog.Ctx(ctx).Info().Str("dir", dirs[i]).Msg("removed empty folder")
		}
	}
}

// moveFile renames when possible and falls back to copy+remove for
// cross-device moves.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
