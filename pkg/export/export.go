// Package export writes leaf subnet rows to interchange formats.
//
// Two formats are supported: CSV for spreadsheet import and indented JSON
// for tooling. Both take the rendering-facing [subnet.Row] projection, so
// the reservation-policy choice (classic or Azure) is already baked into
// the rows by the time they arrive here.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// csvHeader is the first record of every CSV export.
var csvHeader = []string{"cidr", "network", "netmask", "usable_range", "host_capacity", "comment"}

// WriteCSV writes the rows as CSV with a header record. Colors and tree
// path ids are display concerns and are not exported.
func WriteCSV(w io.Writer, rows []subnet.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.CIDR,
			row.Network,
			row.Netmask,
			row.UsableRange,
			strconv.FormatUint(row.HostCapacity, 10),
			row.Comment,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.CIDR, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON encodes the rows as an indented JSON array.
// This format round-trips through any JSON tooling; it is not the share
// token format, which lives in the plan package.
func WriteJSON(w io.Writer, rows []subnet.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportCSV writes the rows to a CSV file at path.
// This is a convenience wrapper around [WriteCSV] for file-based output.
func ExportCSV(rows []subnet.Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(f, rows)
}

// ExportJSON writes the rows to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(rows []subnet.Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, rows)
}
