package gencommon

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type WriterOptions struct {
	OutDir string
	CRLF   bool
	// Force rewrites files even when the cache says they are current.
	Force bool
	// Cache enables the fingerprint cache in OutDir.
	Cache bool
	// Out receives progress lines; nil means stdout.
	Out io.Writer
}

// WriteResult lists the files written and skipped, as paths under OutDir.
type WriteResult struct {
	Written []string
	Skipped []string
}

type Writer struct {
	opts  WriterOptions
	cache *GenerationCache
}

func NewWriter(opts WriterOptions) *Writer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	w := &Writer{opts: opts}
	if opts.Cache {
		w.cache = NewGenerationCache(opts.OutDir)
	}
	return w
}

// Write writes every artifact of every report plus any extra artifacts, then
// saves the cache. Tables that failed as a whole have no artifacts.
func (w *Writer) Write(reports []*Report, extra ...Artifact) (*WriteResult, error) {
	var artifacts []Artifact
	for _, rep := range reports {
		artifacts = append(artifacts, rep.Artifacts...)
	}
	artifacts = append(artifacts, extra...)

	res := &WriteResult{}
	for _, a := range artifacts {
		written, err := w.writeArtifact(a)
		if err != nil {
			return res, err
		}
		if written {
			res.Written = append(res.Written, a.Path)
		} else {
			res.Skipped = append(res.Skipped, a.Path)
		}
	}

	if w.cache != nil {
		w.cache.MarkGeneration()
		if err := w.cache.Save(); err != nil {
			return res, fmt.Errorf("failed to save generation cache: %w", err)
		}
	}
	return res, nil
}

func (w *Writer) writeArtifact(a Artifact) (bool, error) {
	path := filepath.Join(w.opts.OutDir, a.Path)

	if w.cache != nil && !w.opts.Force && w.cache.Unchanged(path, a.Source) {
		PrintSkipMessage(w.opts.Out, a.Path)
		return false, nil
	}

	text := a.Text
	if w.opts.CRLF {
		text = ToCRLF(text)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", a.Path, err)
	}

	if w.cache != nil {
		w.cache.Record(path, a.Source, []byte(text))
	}
	PrintGenerateMessage(w.opts.Out, a.Path)
	return true, nil
}
