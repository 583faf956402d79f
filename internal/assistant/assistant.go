// Package assistant runs the chat loop between the user, the model and the
// canvas session.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/ai"
	"github.com/KaramelBytes/chartloom-cli/internal/logx"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
)

// ErrNoChoices is returned when the provider answers without any message.
var ErrNoChoices = errors.New("model returned no choices")

// Assistant keeps the conversation history for one session.
type Assistant struct {
	Runtime     ai.Runtime
	Model       string
	MaxTokens   int
	Temperature float64
	// MaxRounds bounds model calls per user message.
	MaxRounds int
	// ContextTokens bounds the data context; zero picks a model default.
	ContextTokens int

	history []ai.Message
}

// ToolCall records one executed tool call.
type ToolCall struct {
	Name      string
	Arguments string
	Result    string
}

// Turn is the outcome of one user message.
type Turn struct {
	Reply string
	Calls []ToolCall
	Usage ai.Usage
	// Exhausted is set when MaxRounds ran out while the model still wanted
	// to call tools.
	Exhausted bool
}

func New(rt ai.Runtime, model string) *Assistant {
	return &Assistant{Runtime: rt, Model: model, MaxRounds: 6}
}

func tools(s *agent.Session) []ai.Tool {
	var out []ai.Tool
	for _, t := range s.Tools() {
		out = append(out, ai.Tool{Type: "function", Function: ai.FunctionDef{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}})
	}
	return out
}

func (a *Assistant) system(s *agent.Session) ai.Message {
	budget := a.ContextTokens
	if budget <= 0 {
		budget = ai.ContextBudget(a.Model)
	}
	ctxText := Context(s, budget)
	logx.Debugf("prompt sections: %v", utils.TokenBreakdown(map[string]string{"system": SystemPrompt, "context": ctxText}))
	return ai.Message{Role: "system", Content: SystemPrompt + "\nDATA CONTEXT (JSON):\n" + ctxText}
}

// Converse sends one user message and executes tool calls until the model
// answers in text or MaxRounds is reached. The data context is rebuilt on
// every round so the model sees the effect of its own calls.
func (a *Assistant) Converse(ctx context.Context, s *agent.Session, text string) (*Turn, error) {
	rounds := a.MaxRounds
	if rounds <= 0 {
		rounds = 1
	}
	pending := append(append([]ai.Message{}, a.history...), ai.Message{Role: "user", Content: text})
	turn := &Turn{}
	for round := 0; round < rounds; round++ {
		req := ai.GenerateRequest{
			Model:       a.Model,
			Messages:    append([]ai.Message{a.system(s)}, pending...),
			Tools:       tools(s),
			MaxTokens:   a.MaxTokens,
			Temperature: a.Temperature,
		}
		resp, err := a.Runtime.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		turn.Usage.PromptTokens += resp.Usage.PromptTokens
		turn.Usage.CompletionTokens += resp.Usage.CompletionTokens
		turn.Usage.TotalTokens += resp.Usage.TotalTokens
		if len(resp.Choices) == 0 {
			return nil, ErrNoChoices
		}
		msg := resp.Choices[0].Message
		if msg.Role == "" {
			msg.Role = "assistant"
		}
		pending = append(pending, msg)
		if len(msg.ToolCalls) == 0 {
			turn.Reply = strings.TrimSpace(msg.Content)
			a.history = pending
			return turn, nil
		}
		for _, call := range msg.ToolCalls {
			result := s.Dispatch(call.Function.Name, []byte(call.Function.Arguments))
			turn.Calls = append(turn.Calls, ToolCall{Name: call.Function.Name, Arguments: call.Function.Arguments, Result: string(result)})
			pending = append(pending, ai.Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    string(result),
			})
		}
	}
	logx.Warnf("stopped after %d model rounds with tool calls still pending", rounds)
	turn.Exhausted = true
	a.history = pending
	return turn, nil
}

// Reset forgets the conversation.
func (a *Assistant) Reset() { a.history = nil }
