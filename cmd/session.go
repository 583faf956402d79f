package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/ai"
	"github.com/KaramelBytes/chartloom-cli/internal/render"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// openSession parses path in the background, attaches the upload and waits
// for it, so the session already holds the workbook when it returns.
func openSession(ctx context.Context, path string) (*agent.Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := agent.NewSession()
	u := sheet.StartUpload(ctx, path)
	s.Attach(u)
	wb, err := u.Wait(ctx)
	s.OnWorkbookParsed(wb, err)
	if err != nil {
		return nil, fmt.Errorf("load workbook: %w", err)
	}
	return s, nil
}

// newRuntime builds the chat backend for the configured provider.
func newRuntime() (ai.Runtime, error) {
	c := currentConfig()
	provider := c.DefaultProvider
	if provider == "" {
		provider = ai.ProviderOpenRouter
	}
	rt, ok := ai.GetRuntime(provider, ai.RuntimeConfig{
		HTTPTimeout: time.Duration(c.HTTPTimeoutSec) * time.Second,
		RetryMax:    c.RetryMaxAttempts,
		BaseDelay:   time.Duration(c.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(c.RetryMaxDelayMs) * time.Millisecond,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
	})
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
	return rt, nil
}

// outputPath places relative output files under the configured output_dir.
func outputPath(p string) string {
	return utils.ResolveOutput(currentConfig().OutputDir, p)
}

// writeCanvasHTML renders every chart of the session into one page.
func writeCanvasHTML(s *agent.Session, title, path string) (string, error) {
	var buf bytes.Buffer
	if err := render.CanvasHTML(&buf, title, s.Charts.Items(), s.Charts.CanvasHeight()); err != nil {
		return "", err
	}
	dst := outputPath(path)
	if err := utils.SafeWriteFile(dst, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write html: %w", err)
	}
	return dst, nil
}

// writeState dumps the chart registry as indented JSON.
func writeState(s *agent.Session, path string) (string, error) {
	b, err := utils.PrettyJSON(s.Charts.Items())
	if err != nil {
		return "", err
	}
	dst := outputPath(path)
	if err := utils.SafeWriteFile(dst, append(b, '\n')); err != nil {
		return "", fmt.Errorf("write state: %w", err)
	}
	return dst, nil
}

// printValue writes v as indented JSON or, for format "yaml", as YAML.
func printValue(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid format: %s (use json or yaml)", format)
	}
}

// readInput reads a file, or stdin when path is "" or "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
