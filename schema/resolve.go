package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// HEADER RESOLUTION — Which column realizes each feature in this file
// ============================================================================
// Matching is exact and case-sensitive. Every feature must match exactly one
// header field; zero or several matches means the files of a run do not
// share a schema and the whole run is aborted.
// ============================================================================

// HeaderIndex maps header field names to column positions.
type HeaderIndex struct {
	fields []string
	index  map[string]int
	counts map[string]int
}

// IndexHeader builds a HeaderIndex from an already-split header row.
// A repeated name maps to its last occurrence; Resolve refuses to use it.
func IndexHeader(fields []string) HeaderIndex {
	h := HeaderIndex{
		fields: fields,
		index:  make(map[string]int, len(fields)),
		counts: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		h.index[f] = i
		h.counts[f]++
	}
	return h
}

// Lookup returns the column index of a header field.
func (h HeaderIndex) Lookup(field string) (int, bool) {
	i, ok := h.index[field]
	return i, ok
}

// Occurrences returns how many times a field name appears in the header.
func (h HeaderIndex) Occurrences(field string) int { return h.counts[field] }

// Len returns the number of header fields.
func (h HeaderIndex) Len() int { return len(h.fields) }

// Column is a feature bound to a concrete header field of one file.
type Column struct {
	Feature string
	Header  string
	Index   int
}

// Resolution is the per-file binding of every requested feature.
type Resolution struct {
	Status  Column
	Counted []Column // registry order, STATUS excluded
}

// Resolve binds each feature of the registry to exactly one header field.
// STATUS is resolved first so a file without a status column names it.
func Resolve(file string, header HeaderIndex, reg Registry) (Resolution, error) {
	var res Resolution

	status, ok := reg.Status()
	if !ok {
		return Resolution{}, fmt.Errorf("feature %s is mandatory", StatusFeature)
	}
	col, err := resolveFeature(file, header, status)
	if err != nil {
		return Resolution{}, err
	}
	res.Status = col

	for _, f := range reg.Counted() {
		col, err := resolveFeature(file, header, f)
		if err != nil {
			return Resolution{}, err
		}
		res.Counted = append(res.Counted, col)
	}
	return res, nil
}

func resolveFeature(file string, header HeaderIndex, f Feature) (Column, error) {
	var matches []string
	seen := make(map[string]bool, len(f.Aliases))
	for _, alias := range f.Aliases {
		if seen[alias] {
			continue
		}
		seen[alias] = true
		if _, ok := header.Lookup(alias); ok {
			matches = append(matches, alias)
		}
	}

	if len(matches) != 1 {
		return Column{}, &HeaderResolutionError{
			Feature: f.Name,
			Aliases: f.Aliases,
			File:    file,
			Matches: matches,
		}
	}

	field := matches[0]
	if n := header.Occurrences(field); n > 1 {
		return Column{}, &HeaderResolutionError{
			Feature:   f.Name,
			Aliases:   f.Aliases,
			File:      file,
			Matches:   matches,
			Duplicate: n,
		}
	}

	idx, _ := header.Lookup(field)
	return Column{Feature: f.Name, Header: field, Index: idx}, nil
}

// HeaderResolutionError reports a feature that does not map to exactly one
// header column of a file.
type HeaderResolutionError struct {
	Feature   string
	Aliases   []string
	File      string
	Matches   []string
	Duplicate int // occurrences of the single matched field, when > 1
}

func (e *HeaderResolutionError) Error() string {
	aliases := "{" + strings.Join(e.Aliases, ", ") + "}"
	switch {
	case e.Duplicate > 1:
		return fmt.Sprintf("feature %s %s: column %s appears %d times in the header of input file %s",
			e.Feature, aliases, e.Matches[0], e.Duplicate, e.File)
	case len(e.Matches) == 0:
		return fmt.Sprintf("feature %s %s: no matching column in the header of input file %s",
			e.Feature, aliases, e.File)
	default:
		return fmt.Sprintf("feature %s %s: %d matching columns (%s) in the header of input file %s",
			e.Feature, aliases, len(e.Matches), strings.Join(e.Matches, ", "), e.File)
	}
}
