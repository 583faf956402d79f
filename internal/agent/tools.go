package agent

// Tool describes one command the assistant may call. Parameters is a JSON
// schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type param struct {
	name     string
	typ      string
	desc     string
	required bool
}

func schema(ps ...param) map[string]any {
	props := make(map[string]any, len(ps))
	required := []string{}
	for _, p := range ps {
		prop := map[string]any{"type": p.typ}
		if p.desc != "" {
			prop["description"] = p.desc
		}
		if p.typ == "array" {
			prop["items"] = map[string]any{"type": "object"}
		}
		props[p.name] = prop
		if p.required {
			required = append(required, p.name)
		}
	}
	return map[string]any{"type": "object", "properties": props, "required": required}
}

var (
	toolCreateChart = Tool{
		Name:        "createChart",
		Description: "Creates a chart visualization based on data analysis.",
		Parameters: schema(
			param{"chartType", "string", "The type of chart to create (bar, line, pie, area, scatter, gantt)", true},
			param{"title", "string", "The title of the chart", true},
			param{"data", "array", "The data to visualize; omit it to derive the series from the uploaded sheets", false},
			param{"description", "string", "Description of what the chart shows", false},
		),
	}
	toolResizeChart = Tool{
		Name:        "resizeChart",
		Description: "Resizes a specific chart by its ID or title.",
		Parameters: schema(
			param{"chartIdentifier", "string", "Chart ID or title", true},
			param{"width", "number", "New width in px", true},
			param{"height", "number", "New height in px", true},
		),
	}
	toolResizeAll = Tool{
		Name:        "resizeAllCharts",
		Description: "Resizes all charts to the same size.",
		Parameters: schema(
			param{"width", "number", "New width in px", true},
			param{"height", "number", "New height in px", true},
		),
	}
	toolSmaller = Tool{
		Name:        "makeChartsSmaller",
		Description: "Scales all charts down by a factor.",
		Parameters:  schema(param{"scaleFactor", "number", "0.1 - 1.0", false}),
	}
	toolLarger = Tool{
		Name:        "makeChartsLarger",
		Description: "Scales all charts up by a factor.",
		Parameters:  schema(param{"scaleFactor", "number", "1.0 - 3.0", false}),
	}
	toolGrid = Tool{
		Name:        "arrangeChartsInGrid",
		Description: "Arranges all charts into a grid layout.",
		Parameters: schema(
			param{"columns", "number", "", false},
			param{"chartWidth", "number", "", false},
			param{"chartHeight", "number", "", false},
		),
	}
	toolPair = Tool{
		Name:        "arrangePair",
		Description: "Places two charts side by side by ID or title.",
		Parameters: schema(
			param{"first", "string", "", true},
			param{"second", "string", "", true},
			param{"chartWidth", "number", "", false},
			param{"chartHeight", "number", "", false},
		),
	}
	toolSummary = Tool{
		Name:        "analyzeDataSummary",
		Description: "Analyzes uploaded sheet data and summarizes columns.",
		Parameters:  schema(param{"sheets", "object", "Sheet name to rows; omit it to summarize the uploaded workbook", false}),
	}
	toolFullPage = Tool{
		Name:        "showFullPageChart",
		Description: "Shows a full-page chart view for maximum visibility.",
		Parameters: schema(
			param{"chartType", "string", "The type of chart to display (gantt, scatter, bar, line, pie, area)", true},
			param{"title", "string", "The title of the chart", true},
			param{"dataType", "string", "Type of data to extract (operations, services, errors)", true},
			param{"serviceFilter", "string", "Optional service name to filter by", false},
		),
	}
)

// Tools lists the commands available in the session's current state:
// chart creation needs a workbook, layout commands need charts and pairing
// needs two of them. The summary and full-page view are always offered.
func (s *Session) Tools() []Tool {
	var out []Tool
	if s.Workbook() != nil {
		out = append(out, toolCreateChart)
	}
	if n := s.Charts.Len(); n > 0 {
		out = append(out, toolResizeChart, toolResizeAll, toolSmaller, toolLarger, toolGrid)
		if n > 1 {
			out = append(out, toolPair)
		}
	}
	return append(out, toolSummary, toolFullPage)
}
