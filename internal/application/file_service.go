// Package application orchestrates the conversion driver: resolving a
// path's FileType, invoking the registered codec pair, and (for
// directories) walking immediate entries, per spec.md §4.6.
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordanro2/rotable/internal/domain"
	"github.com/jordanro2/rotable/internal/ports"
)

// ConversionService converts files between the CT and XLSX formats.
type ConversionService struct {
	factory ports.CodecFactory
	sink    ports.ProgressSink
}

// NewConversionService constructs a ConversionService with the given
// codec factory. A nil sink falls back to a no-op sink.
func NewConversionService(factory ports.CodecFactory, sink ports.ProgressSink) *ConversionService {
	if sink == nil {
		sink = ports.NoopProgressSink{}
	}
	return &ConversionService{factory: factory, sink: sink}
}

// ConversionResult is one file's outcome within a batch.
type ConversionResult struct {
	Input  string
	Output string
	Err    error
}

// ConvertPath converts a single file (spec.md §4.6): `.ct` files are read
// as CT and written as XLSX in the same directory; `.xlsx` files are read
// as XLSX and written as CT. Any other extension fails with
// domain.ErrUnsupportedExtension. The output is written to a temporary
// sibling path and atomically renamed into place on success (spec.md §5),
// so a failure never leaves a partial file at the destination.
func (s *ConversionService) ConvertPath(inPath string) (outPath string, err error) {
	ext := strings.ToLower(filepath.Ext(inPath))
	srcType, ok := ports.FileTypeForExt(ext)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExtension, inPath)
	}
	dstType := srcType.Other()

	reader, err := s.factory.Reader(srcType)
	if err != nil {
		return "", fmt.Errorf("no reader for %q: %w", inPath, err)
	}
	writer, err := s.factory.Writer(dstType)
	if err != nil {
		return "", fmt.Errorf("no writer for %q: %w", inPath, err)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return "", fmt.Errorf("open %q: %w", inPath, err)
	}
	defer in.Close()

	table, err := reader.ReadTable(in)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", inPath, err)
	}

	outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + dstType.Ext()
	tmpPath := outPath + ".tmp"

	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", tmpPath, err)
	}
	if err := writer.WriteTable(out, table); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %q: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename %q to %q: %w", tmpPath, outPath, err)
	}
	return outPath, nil
}

// ConvertBatch converts every `.ct`/`.xlsx` file among dir's immediate
// entries (spec.md §4.6: "subdirectories are not recursed unless the
// caller opts in" — this driver never opts in). Each file is independent:
// one file's failure is recorded in its ConversionResult and does not
// abort the rest of the batch.
func (s *ConversionService) ConvertBatch(dir string) ([]ConversionResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var results []ConversionResult
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := ports.FileTypeForExt(ext); !ok {
			continue
		}
		inPath := filepath.Join(dir, entry.Name())
		outPath, convErr := s.ConvertPath(inPath)
		s.sink.Report(inPath, outPath, convErr)
		results = append(results, ConversionResult{Input: inPath, Output: outPath, Err: convErr})
	}
	return results, nil
}
