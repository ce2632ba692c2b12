package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/spektr-org/certstat/ingest"
)

// progress prints one line per input file:
//
//	Reading data from file input/h1b_2016.csv ... Done!
//
// On a terminal with a single worker the line is animated with a spinner.
type progress struct {
	w       io.Writer
	quiet   bool
	animate bool

	mu      sync.Mutex
	spinner *spinner.Spinner
}

func newProgress(w io.Writer, quiet bool, workers int) *progress {
	return &progress{
		w:       w,
		quiet:   quiet,
		animate: workers <= 1 && isTerminal(w),
	}
}

// Handle receives ingest.FileEvents.
func (p *progress) Handle(ev ingest.FileEvent) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	label := fmt.Sprintf("Reading data from file %s ...", ev.Path)

	if !ev.Done {
		if p.animate {
			p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(p.w))
			p.spinner.Suffix = " " + label
			p.spinner.Start()
		}
		return
	}

	result := color.GreenString("Done!")
	if ev.Err != nil {
		result = color.RedString("Failed!")
	}

	if p.spinner != nil {
		p.spinner.FinalMSG = label + " " + result + "\n"
		p.spinner.Stop()
		p.spinner = nil
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", label, result)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
