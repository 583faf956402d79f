package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/logx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	runHTML   string
	runState  string
	runShared string
	runTitle  string
	runStrict bool
)

// scriptStep is one recorded tool call.
type scriptStep struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args,omitempty"`
}

// stepResult is printed as one JSON line per executed step.
type stepResult struct {
	Step   int             `json:"step"`
	Tool   string          `json:"tool"`
	Result json.RawMessage `json:"result"`
}

var runCmd = &cobra.Command{
	Use:   "run <file> <script>",
	Short: "Replay a script of assistant tool calls against a workbook",
	Long: `Replay tool calls against one canvas session. The script is either JSON lines
({"tool": "...", "args": {...}} per line, # comments allowed) or, for .yaml/.yml
files, a YAML list of {tool, args} entries. Use "-" to read the script from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd.InOrStdin(), args[1])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		steps, err := parseScript(args[1], raw)
		if err != nil {
			return err
		}
		s, err := openSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if runShared != "" {
			if item, ok := s.LoadShared(runShared); ok {
				logx.Infof("loaded shared chart %q as %s", item.Title, item.ID)
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: shared chart ignored")
			}
		}

		enc := json.NewEncoder(out)
		for i, st := range steps {
			res := s.Dispatch(st.Tool, st.Args)
			if err := enc.Encode(stepResult{Step: i + 1, Tool: st.Tool, Result: res}); err != nil {
				return err
			}
			if runStrict && isErrorResult(res) {
				return fmt.Errorf("step %d (%s) failed: %s", i+1, st.Tool, res)
			}
		}

		if runHTML != "" {
			dst, err := writeCanvasHTML(s, runTitle, runHTML)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s (%d charts)\n", dst, s.Charts.Len())
		}
		if runState != "" {
			dst, err := writeState(s, runState)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", dst)
		}
		return nil
	},
}

func isErrorResult(res json.RawMessage) bool {
	var e agent.ErrorResult
	return json.Unmarshal(res, &e) == nil && e.Error != ""
}

// parseScript reads JSON lines, or a YAML list when name has a YAML
// extension.
func parseScript(name string, raw []byte) ([]scriptStep, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAMLScript(raw)
	}
	var steps []scriptStep
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 64<<10), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var st scriptStep
		if err := json.Unmarshal([]byte(text), &st); err != nil {
			return nil, fmt.Errorf("script line %d: %w", line, err)
		}
		if st.Tool == "" {
			return nil, fmt.Errorf("script line %d: missing tool", line)
		}
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseYAMLScript(raw []byte) ([]scriptStep, error) {
	var doc []struct {
		Tool string    `yaml:"tool"`
		Args yaml.Node `yaml:"args"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml script: %w", err)
	}
	steps := make([]scriptStep, 0, len(doc))
	for i, d := range doc {
		if d.Tool == "" {
			return nil, fmt.Errorf("script entry %d: missing tool", i+1)
		}
		st := scriptStep{Tool: d.Tool}
		if d.Args.Kind != 0 {
			var buf bytes.Buffer
			if err := nodeJSON(&buf, &d.Args); err != nil {
				return nil, fmt.Errorf("script entry %d: %w", i+1, err)
			}
			st.Args = buf.Bytes()
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// nodeJSON writes a YAML node as JSON, keeping mapping key order so data
// rows keep their column order.
func nodeJSON(w io.Writer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			_, err := io.WriteString(w, "null")
			return err
		}
		return nodeJSON(w, n.Content[0])
	case yaml.AliasNode:
		return nodeJSON(w, n.Alias)
	case yaml.MappingNode:
		io.WriteString(w, "{")
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				io.WriteString(w, ",")
			}
			k, _ := json.Marshal(n.Content[i].Value)
			w.Write(k)
			io.WriteString(w, ":")
			if err := nodeJSON(w, n.Content[i+1]); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "}")
		return err
	case yaml.SequenceNode:
		io.WriteString(w, "[")
		for i, c := range n.Content {
			if i > 0 {
				io.WriteString(w, ",")
			}
			if err := nodeJSON(w, c); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runHTML, "html", "", "render the final canvas to this HTML file")
	runCmd.Flags().StringVar(&runState, "state", "", "write the final chart registry as JSON to this file")
	runCmd.Flags().StringVar(&runShared, "share", "", "load a shared chart (URL or payload) onto the canvas first")
	runCmd.Flags().StringVar(&runTitle, "title", "ChartLoom canvas", "page title for --html")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "stop at the first step that returns an error")
}
