package star

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// CacheWriter persists derived radial profiles for the solvers to pick
// up. Rules never touch the filesystem directly; the writer is injected
// so callers can capture or suppress the side effect.
type CacheWriter interface {
	WriteColumns(path string, columns ...[]float64) error
}

// FileCacheWriter writes column files to disk, creating parent
// directories as needed.
type FileCacheWriter struct{}

func (FileCacheWriter) WriteColumns(path string, columns ...[]float64) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to write")
	}
	rows := len(columns[0])
	for _, col := range columns {
		if len(col) < rows {
			rows = len(col)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	w := bufio.NewWriter(f)
	for i := 0; i < rows; i++ {
		for j, col := range columns {
			if j > 0 {
				if _, err := w.WriteString("  "); err != nil {
					_ = f.Close()
					return fmt.Errorf("write cache file: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "%.8e", col[i]); err != nil {
				_ = f.Close()
				return fmt.Errorf("write cache file: %w", err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			_ = f.Close()
			return fmt.Errorf("write cache file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	return nil
}

// DiscardCacheWriter drops all writes. Useful when a caller only wants
// parameter values without solver exchange files appearing on disk.
type DiscardCacheWriter struct{}

func (DiscardCacheWriter) WriteColumns(string, ...[]float64) error {
	return nil
}
