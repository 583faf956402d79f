package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/render"
	"github.com/KaramelBytes/chartloom-cli/internal/share"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chartType      string
	chartTitle     string
	chartDesc      string
	chartData      string
	chartShare     bool
	chartShareBase string
	chartPNG       string
	chartSVG       string
	chartCSV       string
	chartFormat    string
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Create one chart from a workbook and print the resolved result",
	Long: `Create one chart the way the assistant's createChart tool does. Without --data
the chart's points are derived from the workbook's first sheet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		callArgs, err := chartArgs()
		if err != nil {
			return err
		}
		res, err := s.Call("createChart", callArgs)
		if err != nil {
			return err
		}
		created := res.(agent.ChartCreated)
		out := cmd.OutOrStdout()
		if err := printValue(out, chartFormat, created); err != nil {
			return err
		}
		item, err := s.Charts.Find(created.ID)
		if err != nil {
			return err
		}

		if chartShare || chartShareBase != "" {
			base := chartShareBase
			if base == "" {
				base = currentConfig().ShareBaseURL
			}
			link, err := share.Link(base, share.FromItem(item))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "share: %s\n", link)
		}
		for _, img := range []struct {
			path   string
			format render.Format
		}{{chartPNG, render.PNG}, {chartSVG, render.SVG}} {
			if img.path == "" {
				continue
			}
			var buf bytes.Buffer
			if err := render.ChartImage(&buf, item, img.format); err != nil {
				return fmt.Errorf("render %s: %w", img.format, err)
			}
			dst := outputPath(img.path)
			if err := utils.SafeWriteFile(dst, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %s\n", dst)
		}
		if chartCSV != "" {
			dst := outputPath(chartCSV)
			if err := utils.SafeWriteFile(dst, []byte(render.DataCSV(item.Data))); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %s\n", dst)
		}
		return nil
	},
}

// chartArgs builds createChart arguments from the flags. --data is left out
// entirely when empty so the chart is derived from the workbook.
func chartArgs() (json.RawMessage, error) {
	in := struct {
		ChartType   canvas.ChartType `json:"chartType"`
		Title       string           `json:"title"`
		Description string           `json:"description,omitempty"`
		Data        json.RawMessage  `json:"data,omitempty"`
	}{Title: chartTitle, Description: chartDesc}
	ct, err := canvas.ParseChartType(chartType)
	if err != nil {
		return nil, err
	}
	in.ChartType = ct
	if in.Title == "" {
		in.Title = strings.ToUpper(string(ct[:1])) + string(ct[1:]) + " chart"
	}
	if d := strings.TrimSpace(chartData); d != "" {
		if !json.Valid([]byte(d)) {
			return nil, fmt.Errorf("--data is not valid JSON")
		}
		in.Data = json.RawMessage(d)
	}
	return json.Marshal(in)
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartType, "type", "t", "bar", "chart type: bar, line, pie, area, scatter, gantt")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "chart title")
	chartCmd.Flags().StringVar(&chartDesc, "desc", "", "chart description")
	chartCmd.Flags().StringVar(&chartData, "data", "", "explicit data as a JSON array of objects")
	chartCmd.Flags().BoolVar(&chartShare, "share", false, "print a share link using share_base_url")
	chartCmd.Flags().StringVar(&chartShareBase, "share-base", "", "print a share link rooted at this URL")
	chartCmd.Flags().StringVar(&chartPNG, "png", "", "write the chart as PNG to this path")
	chartCmd.Flags().StringVar(&chartSVG, "svg", "", "write the chart as SVG to this path")
	chartCmd.Flags().StringVar(&chartCSV, "csv", "", "write the chart data as CSV to this path")
	chartCmd.Flags().StringVar(&chartFormat, "format", "json", "output format: json or yaml")
}
