package assistant

import (
	"encoding/json"

	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
	"github.com/KaramelBytes/chartloom-cli/internal/transform"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
)

// SampleRows is how many rows of each sheet the model sees verbatim.
const SampleRows = 5

type sheetContext struct {
	Name      string                         `json:"name"`
	TotalRows int                            `json:"totalRows"`
	Columns   transform.ColumnClassification `json:"columns"`
	Sample    []sheet.Row                    `json:"sample"`
}

type chartContext struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	ChartType canvas.ChartType `json:"chartType"`
	Points    int              `json:"points"`
	Position  canvas.Position  `json:"position"`
	Size      canvas.Size      `json:"size"`
}

type contextDoc struct {
	Workbook      string         `json:"workbook,omitempty"`
	UploadPending bool           `json:"uploadPending,omitempty"`
	Error         string         `json:"error,omitempty"`
	Sheets        []sheetContext `json:"sheets"`
	Charts        []chartContext `json:"charts"`
}

// Context renders what the model may read about the session: sheet
// structure with a few sample rows, the charts on the canvas and the last
// upload error. The text is cut to roughly budget tokens.
func Context(s *agent.Session, budget int) string {
	doc := contextDoc{Sheets: []sheetContext{}, Charts: []chartContext{}}
	doc.UploadPending = s.Pending()
	if err := s.LoadError(); err != nil {
		doc.Error = err.Error()
	}
	if wb := s.Workbook(); wb != nil {
		doc.Workbook = wb.Name
		for _, name := range wb.Names() {
			rows, _ := wb.Sheet(name)
			sample := rows
			if len(sample) > SampleRows {
				sample = sample[:SampleRows]
			}
			doc.Sheets = append(doc.Sheets, sheetContext{
				Name:      name,
				TotalRows: len(rows),
				Columns:   transform.Classify(rows),
				Sample:    sample,
			})
		}
	}
	for _, c := range s.Charts.Items() {
		doc.Charts = append(doc.Charts, chartContext{
			ID: c.ID, Title: c.Title, ChartType: c.ChartType,
			Points: len(c.Data), Position: c.Position, Size: c.Size,
		})
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return `{"error":"context unavailable"}`
	}
	return utils.TruncateToTokenLimit(string(b), budget)
}
