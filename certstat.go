// Package certstat ranks the most frequent values of certified applications
// in yearly labor-certification exports.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/certstat/engine"
//	    "github.com/spektr-org/certstat/ingest"
//	    "github.com/spektr-org/certstat/schema"
//	)
//
//	run, err := engine.NewRun(schema.DefaultRegistry(), engine.WithTopK(10))
//	_, err = ingest.New(ingest.WithWorkers(4)).IngestDir(ctx, "./input", run)
//	reports := run.Reports()
//
// The schema package maps logical features (OCCUPATIONS, STATES) to the
// header spellings of each export. The engine counts and ranks, and never
// does I/O. Reports are written by the report package; the certstat command
// wires everything together.
package certstat
