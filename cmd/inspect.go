package cmd

import (
	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
	"github.com/KaramelBytes/chartloom-cli/internal/transform"
	"github.com/spf13/cobra"
)

var inspectFormat string

type sheetReport struct {
	Name string `json:"name" yaml:"name"`
	transform.ColumnClassification `yaml:",inline"`
}

type inspectReport struct {
	Workbook string        `json:"workbook" yaml:"workbook"`
	Summary  any           `json:"summary" yaml:"summary"`
	Sheets   []sheetReport `json:"sheets" yaml:"sheets"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a workbook and classify its columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), inspectFormat, buildReport(s.Workbook()))
	},
}

func buildReport(wb *sheet.Workbook) inspectReport {
	r := inspectReport{Workbook: wb.Name, Summary: agent.Summarize(wb).Summary, Sheets: []sheetReport{}}
	for _, name := range wb.Names() {
		rows, _ := wb.Sheet(name)
		r.Sheets = append(r.Sheets, sheetReport{Name: name, ColumnClassification: transform.Classify(rows)})
	}
	return r
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "json", "output format: json or yaml")
}
