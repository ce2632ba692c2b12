package ingest

import "strings"

// Delimiter separates fields in headers and records.
const Delimiter = ";"

// CertifiedStatus is the STATUS value a record must carry to be counted.
const CertifiedStatus = "CERTIFIED"

// SplitLine splits a record on the field delimiter. Quoted fields are not
// special: a delimiter inside quotes still splits.
func SplitLine(line string) []string {
	return strings.Split(line, Delimiter)
}

// StripQuotes removes every double quote from a field.
func StripQuotes(field string) string {
	return strings.ReplaceAll(field, `"`, "")
}

// trimEOL drops a trailing "\n" or "\r\n".
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
