// Package render writes query results and dashboard views for terminals:
// aligned text tables or indented JSON.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/model"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

// Format selects the output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// NullText is how a null cell prints in text tables.
const NullText = "NULL"

// ErrUnknownFormat is returned for any format other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Table writes res in the given format. Text output is a header, a rule,
// the rows and a row count.
func Table(w io.Writer, res *table.Result, f Format) error {
	if f == FormatJSON {
		return writeJSON(w, res)
	}
	if res == nil {
		res = table.New(nil, nil)
	}
	if len(res.Columns) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		names := res.ColumnNames()
		rules := make([]string, len(names))
		for i, n := range names {
			rules[i] = strings.Repeat("-", max(len(n), 1))
		}
		writeCells(tw, names)
		writeCells(tw, rules)
		cells := make([]string, len(res.Columns))
		for _, row := range res.Rows {
			for i := range cells {
				cells[i] = NullText
				if i < len(row) && row[i] != nil {
					cells[i] = table.Format(row[i])
				}
			}
			writeCells(tw, cells)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	_, err := fmt.Fprintf(w, "(%d %s)\n", res.Len(), plural(res.Len(), "row"))
	return err
}

// Summary writes the home view.
func Summary(w io.Writer, home service.HomeView, f Format) error {
	if f == FormatJSON {
		return writeJSON(w, home)
	}
	if home.Empty || home.Summary == nil || home.Top == nil {
		msg := home.Message
		if msg == "" {
			msg = service.EmptyRankingsMessage
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Total competitors:\t%d\n", home.Summary.TotalCompetitors)
	fmt.Fprintf(tw, "Countries represented:\t%d\n", home.Summary.TotalCountries)
	fmt.Fprintf(tw, "Highest points:\t%s\n", table.Format(home.Summary.HighestPoints))
	fmt.Fprintf(tw, "Top competitor:\t%s\n", describeTop(*home.Top))
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

// Questions writes the canned question labels, one per line.
func Questions(w io.Writer, labels []string, f Format) error {
	if f == FormatJSON {
		if labels == nil {
			labels = []string{}
		}
		return writeJSON(w, struct {
			Questions []string `json:"questions"`
		}{labels})
	}
	for _, l := range labels {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func describeTop(top model.TopCompetitor) string {
	if top.Country == nil {
		return fmt.Sprintf("%s, rank %d", top.Name, top.Rank)
	}
	return fmt.Sprintf("%s (%s), rank %d", top.Name, *top.Country, top.Rank)
}

// writeCells terminates every cell but the last with a tab, so the final
// column is never padded.
func writeCells(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			_, _ = io.WriteString(w, "\t")
		}
		_, _ = io.WriteString(w, sanitize(c))
	}
	_, _ = io.WriteString(w, "\n")
}

var cellReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func sanitize(s string) string { return cellReplacer.Replace(s) }

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
