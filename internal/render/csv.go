package render

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// DataCSV exports chart rows as CSV. Headers come from the first row and are
// written as is; every value is quoted with embedded quotes doubled. Missing
// and nil values are empty. No rows give an empty string.
func DataCSV(rows []sheet.Row) string {
	if len(rows) == 0 {
		return ""
	}
	headers := rows[0].Keys()
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, r := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			v, _ := r.Get(h)
			s := ""
			if v != nil {
				s = cast.ToString(v)
			}
			cells[i] = `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}
