package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/share"
	"github.com/spf13/cobra"
)

var (
	shareBase   string
	shareRaw    bool
	shareFormat string
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode or decode shareable chart links",
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode [chart.json]",
	Short: "Encode a chart (chartType, title, data, description) as a share link",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		raw, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return fmt.Errorf("read chart: %w", err)
		}
		var p share.Payload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("parse chart: %w", err)
		}
		var out string
		if shareRaw {
			out, err = share.Encode(p)
		} else {
			base := shareBase
			if base == "" {
				base = currentConfig().ShareBaseURL
			}
			out, err = share.Link(base, p)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <url-or-payload>",
	Short: "Decode a share link or payload back into chart JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, ok := share.Decode(strings.TrimSpace(args[0]))
		if !ok {
			return errors.New("not a valid shared chart")
		}
		return printValue(cmd.OutOrStdout(), shareFormat, p)
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)
	shareEncodeCmd.Flags().StringVar(&shareBase, "base", "", "base URL for the link (default share_base_url)")
	shareEncodeCmd.Flags().BoolVar(&shareRaw, "raw", false, "print only the encoded payload")
	shareDecodeCmd.Flags().StringVar(&shareFormat, "format", "json", "output format: json or yaml")
}
