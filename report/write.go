package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/spektr-org/certstat/engine"
)

// OutputWriteError reports a report destination that could not be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("cannot open file %s for writing the output: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

type staged struct {
	tmp, path string
}

// WriteAll writes one file per report into dir. Every report is staged to a
// temporary file first; if any of them fails, all staged files are removed
// and no report is put in place. A failed rename also removes the reports
// already renamed by this call. Returns the final paths in report order.
func WriteAll(fs afero.Fs, dir string, reports []engine.Report, k int, f Format) ([]string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, &OutputWriteError{Path: dir, Err: err}
	}

	files := make([]staged, 0, len(reports))
	cleanup := func() {
		for _, s := range files {
			_ = fs.Remove(s.tmp)
		}
	}

	for _, r := range reports {
		path := filepath.Join(dir, FileName(r.Feature, k, f))
		tmp := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
		if err := writeFile(fs, tmp, r, f); err != nil {
			_ = fs.Remove(tmp)
			cleanup()
			return nil, &OutputWriteError{Path: path, Err: err}
		}
		files = append(files, staged{tmp: tmp, path: path})
	}

	paths := make([]string, 0, len(files))
	for i, s := range files {
		if err := fs.Rename(s.tmp, s.path); err != nil {
			for _, done := range paths {
				_ = fs.Remove(done)
			}
			for _, rest := range files[i:] {
				_ = fs.Remove(rest.tmp)
			}
			return nil, &OutputWriteError{Path: s.path, Err: err}
		}
		log.Debug().Str("path", s.path).Msg("report written")
		paths = append(paths, s.path)
	}
	return paths, nil
}

func writeFile(fs afero.Fs, path string, r engine.Report, f Format) error {
	out, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(out, r, f); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
