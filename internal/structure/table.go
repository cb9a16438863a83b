package structure

import (
	"strings"

	"github.com/dgallion1/wordjson/internal/doctree"
)

// Table is a raw grid of cell texts in row order.
type Table struct {
	Rows [][]string
}

// ExtractTable converts a grid into one Record per data row, keyed by the
// trimmed cells of the first row. Tables with fewer than two rows yield an
// empty set. Cells past the header width are dropped; short rows simply
// omit the missing keys.
func ExtractTable(rows [][]string) doctree.TableRecordSet {
	records := doctree.TableRecordSet{}
	if len(rows) < 2 {
		return records
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
	}

	for _, row := range rows[1:] {
		var rec doctree.Record
		for j, cell := range row {
			if j >= len(headers) {
				break
			}
			rec.Set(headers[j], strings.TrimSpace(cell))
		}
		records = append(records, rec)
	}
	return records
}
