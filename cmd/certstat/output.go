package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/spektr-org/certstat/ingest"
	"github.com/spektr-org/certstat/report"
	"github.com/spektr-org/certstat/schema"
)

// printSuccess prints a success message
func printSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), message)
}

// printError prints a fatal error with a hint about the failing stage.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("ERROR:"), err)
	if hint := errorHint(err); hint != "" {
		fmt.Fprintf(w, "  %s\n", hint)
	}
	fmt.Fprintln(w, "Running the code is terminated.")
}

func errorHint(err error) string {
	var (
		headerErr *schema.HeaderResolutionError
		lineErr   *ingest.MalformedInputError
		inputErr  *ingest.NoInputError
		outErr    *report.OutputWriteError
	)
	switch {
	case errors.As(err, &headerErr):
		return "Check the header aliases of feature " + headerErr.Feature + " (see --features)."
	case errors.As(err, &lineErr):
		return "Delimiters inside quoted fields are not supported."
	case errors.As(err, &inputErr):
		return "Put the input files in the directory given by --input."
	case errors.As(err, &outErr):
		return "Check that --output points to a writable directory."
	}
	return ""
}
