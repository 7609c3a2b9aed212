package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/mwhitby/unitcheck/internal/domain"
	"github.com/mwhitby/unitcheck/internal/ports"
)

// ZipArchiver packs export files into a deflate-compressed zip, all
// entries at the archive root.
type ZipArchiver struct{}

func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

func (z *ZipArchiver) Build(ctx context.Context, files []ports.ExportFile) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrArchive, err)
		}
		entry, err := w.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: creating entry %s: %w", domain.ErrArchive, file.Name, err)
		}
		if _, err := entry.Write(file.Data); err != nil {
			return nil, fmt.Errorf("%w: writing entry %s: %w", domain.ErrArchive, file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArchive, err)
	}
	return buf.Bytes(), nil
}
