// Package local saves finished export archives to a directory on disk.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Sink struct {
	basePath string
}

func NewSink(basePath string) (*Sink, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Sink{basePath: basePath}, nil
}

func (s *Sink) Save(ctx context.Context, name string, data []byte) error {
	filePath, err := s.safeJoin(name)
	if err != nil {
		return err
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close archive after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove archive after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove archive after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close archive file: %w", err)
	}
	return nil
}

// safeJoin resolves name relative to basePath and rejects directory
// traversal.
func (s *Sink) safeJoin(name string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, name))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
