package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/certstat/engine"
)

// ============================================================================
// REPORT ENCODING — engine.Report → text / json / yaml
// ============================================================================
// The text form is the canonical artefact:
//
//	TOP_OCCUPATIONS;NUMBER_CERTIFIED_APPLICATIONS;PERCENTAGE
//	SOFTWARE DEVELOPERS, APPLICATIONS;6;60.0%
// ============================================================================

// Format selects a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or yaml)", s)
	}
}

// Extension returns the file extension for a format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// featureKey turns "WORK CITIES" into "WORK_CITIES".
func featureKey(feature string) string {
	return strings.ReplaceAll(feature, " ", "_")
}

// Header returns the first line of a text report.
func Header(feature string) string {
	return "TOP_" + strings.ToUpper(featureKey(feature)) + ";NUMBER_CERTIFIED_APPLICATIONS;PERCENTAGE"
}

// FileName returns the report file name for a feature, e.g. top_10_states.txt.
func FileName(feature string, k int, f Format) string {
	return "top_" + strconv.Itoa(k) + "_" + strings.ToLower(featureKey(feature)) + f.Extension()
}

// Encode writes one report in the given format.
func Encode(w io.Writer, r engine.Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return EncodeText(w, r)
	}
}

// EncodeText writes the ';'-delimited report.
func EncodeText(w io.Writer, r engine.Report) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Header(r.Feature))
	bw.WriteByte('\n')
	for _, e := range r.Entries {
		bw.WriteString(e.Value)
		bw.WriteByte(';')
		bw.WriteString(strconv.Itoa(e.Count))
		bw.WriteByte(';')
		bw.WriteString(engine.FormatPercentage(e.Percentage))
		bw.WriteString("%\n")
	}
	return bw.Flush()
}
