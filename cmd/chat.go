package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/ai"
	"github.com/KaramelBytes/chartloom-cli/internal/assistant"
	"github.com/spf13/cobra"
)

var (
	chatModel string
	chatHTML  string
	chatShow  bool
)

var chatCmd = &cobra.Command{
	Use:   "chat <file>",
	Short: "Talk to the chart assistant about a workbook",
	Long: `Each line read from stdin is sent to the assistant. Its tool calls create and
arrange charts on the session canvas. Type /reset to forget the conversation and
/quit to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		c := currentConfig()
		model := chatModel
		if model == "" {
			model = c.DefaultModel
		}
		a := assistant.New(rt, model)
		a.MaxTokens = c.MaxTokens
		a.Temperature = c.Temperature
		if c.MaxToolRounds > 0 {
			a.MaxRounds = c.MaxToolRounds
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Loaded %s (%d sheet(s)). Ask for a chart, /reset or /quit.\n", s.Workbook().Name, s.Workbook().Len())
		sc := bufio.NewScanner(cmd.InOrStdin())
		var spent float64
		for {
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				break
			}
			line := strings.TrimSpace(sc.Text())
			switch line {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/reset":
				a.Reset()
				fmt.Fprintln(out, "✓ Conversation cleared")
				continue
			}

			turn, err := a.Converse(cmd.Context(), s, line)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ Error: %v\n", err)
				continue
			}
			for _, call := range turn.Calls {
				if chatShow {
					fmt.Fprintf(out, "• %s %s -> %s\n", call.Name, call.Arguments, call.Result)
				} else {
					fmt.Fprintf(out, "• %s\n", call.Name)
				}
			}
			if turn.Reply != "" {
				fmt.Fprintln(out, turn.Reply)
			}
			if turn.Exhausted {
				fmt.Fprintln(out, "⚠ Stopped: too many tool rounds for one message")
			}
			if cost, ok := ai.EstimateCostUSD(model, turn.Usage.PromptTokens, turn.Usage.CompletionTokens); ok {
				spent += cost
				fmt.Fprintf(out, "(tokens %d, est. $%.4f, session $%.4f)\n", turn.Usage.TotalTokens, cost, spent)
			}
			if chatHTML != "" && len(turn.Calls) > 0 {
				dst, err := writeCanvasHTML(s, "ChartLoom canvas", chatHTML)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Canvas updated: %s\n", dst)
			}
		}
		return sc.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "model to use (default from config)")
	chatCmd.Flags().StringVar(&chatHTML, "html", "", "re-render the canvas to this HTML file after each turn")
	chatCmd.Flags().BoolVar(&chatShow, "show-calls", false, "print tool arguments and results")
}
