package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/spektr-org/certstat/engine"
	"github.com/spektr-org/certstat/schema"
)

// ============================================================================
// INGEST — Streams input files into a run's counters
// ============================================================================
// Per file: read header → resolve features → for every record, keep it only
// if STATUS is CERTIFIED, then record each counted feature's value.
// Every failure is fatal to the run; nothing is skipped silently except
// non-certified records and empty values.
// ============================================================================

// ctxCheckEvery is how many lines pass between cancellation checks.
const ctxCheckEvery = 1024

// Aggregator reads input files into an engine.Run.
type Aggregator struct {
	fs      afero.Fs
	workers int
	metrics *Metrics
	onFile  func(FileEvent)
	logger  zerolog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFs reads inputs from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(a *Aggregator) { a.fs = fs }
}

// WithWorkers sets how many files are ingested concurrently. Values below 1
// mean sequential ingestion.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n < 1 {
			n = 1
		}
		a.workers = n
	}
}

// WithMetrics records ingestion counts.
func WithMetrics(m *Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// WithProgress registers a hook called when a file starts and finishes.
// With more than one worker the hook is called concurrently.
func WithProgress(fn func(FileEvent)) Option {
	return func(a *Aggregator) { a.onFile = fn }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// New creates an Aggregator. Defaults: OS filesystem, one worker, global logger.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		fs:      afero.NewOsFs(),
		workers: 1,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FileStats summarizes one ingested file.
type FileStats struct {
	Path      string         `json:"path" yaml:"path"`
	Rows      int            `json:"rows" yaml:"rows"`
	Certified int            `json:"certified" yaml:"certified"`
	Skipped   int            `json:"skipped" yaml:"skipped"`
	Recorded  map[string]int `json:"recorded" yaml:"recorded"` // non-empty values per feature
}

// FileEvent is passed to the progress hook.
type FileEvent struct {
	Path  string
	Done  bool
	Stats FileStats
	Err   error
}

// ============================================================================
// DIRECTORY
// ============================================================================

// ListInputs returns the regular, non-hidden files of dir in lexical order.
func ListInputs(fs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, &NoInputError{Dir: dir, Err: err}
	}
	var files []string
	for _, fi := range infos {
		if fi.IsDir() || strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, fi.Name()))
	}
	if len(files) == 0 {
		return nil, &NoInputError{Dir: dir}
	}
	return files, nil
}

// IngestDir ingests every input file of dir. The first error cancels any
// files still in flight and is returned.
func (a *Aggregator) IngestDir(ctx context.Context, dir string, run *engine.Run) ([]FileStats, error) {
	files, err := ListInputs(a.fs, dir)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("dir", dir).Int("files", len(files)).Int("workers", a.workers).Msg("ingesting input directory")

	stats := make([]FileStats, len(files))

	if a.workers <= 1 {
		for i, path := range files {
			s, err := a.IngestFile(ctx, path, run)
			if err != nil {
				return nil, err
			}
			stats[i] = s
		}
		return stats, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, path := range files {
		g.Go(func() error {
			s, err := a.IngestFile(gctx, path, run)
			if err != nil {
				return err
			}
			stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// ============================================================================
// FILE
// ============================================================================

// IngestFile streams one file into the run's counters.
func (a *Aggregator) IngestFile(ctx context.Context, path string, run *engine.Run) (FileStats, error) {
	a.notify(FileEvent{Path: path})

	stats, err := a.ingestFile(ctx, path, run)
	if err != nil {
		a.logger.Debug().Err(err).Str("file", path).Msg("ingestion failed")
		a.notify(FileEvent{Path: path, Done: true, Err: err})
		return FileStats{}, err
	}

	a.metrics.observeFile(stats)
	a.logger.Debug().
		Str("file", path).
		Int("rows", stats.Rows).
		Int("certified", stats.Certified).
		Msg("file ingested")
	a.notify(FileEvent{Path: path, Done: true, Stats: stats})
	return stats, nil
}

func (a *Aggregator) ingestFile(ctx context.Context, path string, run *engine.Run) (FileStats, error) {
	if err := ctx.Err(); err != nil {
		return FileStats{}, err
	}
	f, reader, err := openInput(a.fs, path)
	if err != nil {
		return FileStats{}, err
	}
	defer f.Close()

	// 1. Header
	header, err := readHeader(reader, path)
	if err != nil {
		return FileStats{}, err
	}

	// 2. Resolve features
	res, err := schema.Resolve(path, header, run.Registry())
	if err != nil {
		return FileStats{}, err
	}
	a.logger.Debug().Str("file", path).Str("status", res.Status.Header).Msg("header resolved")

	counters := make([]*engine.Counter, len(res.Counted))
	for i, col := range res.Counted {
		counters[i] = run.Counter(col.Feature)
	}

	stats := FileStats{Path: path, Recorded: make(map[string]int, len(res.Counted))}

	// 3. Records
	lineNo := 1
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return FileStats{}, fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		lineNo++

		if lineNo%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return FileStats{}, err
			}
		}

		stats.Rows++

		// A blank line has a single empty field: malformed unless STATUS
		// is the first column, where it is simply not certified.
		fields := SplitLine(trimEOL(line))
		if res.Status.Index >= len(fields) {
			return FileStats{}, malformed(path, lineNo, fields, res.Status)
		}

		// 4. Filter
		if StripQuotes(fields[res.Status.Index]) != CertifiedStatus {
			stats.Skipped++
			continue
		}
		stats.Certified++

		// 5. Count
		for i, col := range res.Counted {
			if col.Index >= len(fields) {
				return FileStats{}, malformed(path, lineNo, fields, col)
			}
			value := StripQuotes(fields[col.Index])
			if value == "" {
				continue
			}
			counters[i].Record(value)
			stats.Recorded[col.Feature]++
		}

		if readErr != nil {
			break
		}
	}

	return stats, nil
}

// ReadHeader reads only the header row of an input file.
func ReadHeader(fs afero.Fs, path string) (schema.HeaderIndex, error) {
	f, reader, err := openInput(fs, path)
	if err != nil {
		return schema.HeaderIndex{}, err
	}
	defer f.Close()
	return readHeader(reader, path)
}

func openInput(fs afero.Fs, path string) (afero.File, *bufio.Reader, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	// A leading byte order mark belongs to the encoding, not the first header name.
	decoded := transform.NewReader(f, unicode.BOMOverride(transform.Nop))
	return f, bufio.NewReaderSize(decoded, 64*1024), nil
}

func readHeader(r *bufio.Reader, path string) (schema.HeaderIndex, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return schema.HeaderIndex{}, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return schema.IndexHeader(SplitLine(trimEOL(line))), nil
}

func malformed(path string, lineNo int, fields []string, col schema.Column) error {
	return &MalformedInputError{
		File:   path,
		Line:   lineNo,
		Fields: len(fields),
		Column: col.Header,
		Index:  col.Index,
	}
}

func (a *Aggregator) notify(ev FileEvent) {
	if a.onFile != nil {
		a.onFile(ev)
	}
}
