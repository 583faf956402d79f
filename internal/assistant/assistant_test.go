package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/agent"
	"github.com/KaramelBytes/chartloom-cli/internal/ai"
	"github.com/KaramelBytes/chartloom-cli/internal/assistant"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// scripted replays canned responses and records every request.
type scripted struct {
	responses []ai.GenerateResponse
	requests  []ai.GenerateRequest
}

func (f *scripted) Generate(_ context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return nil, errors.New("no more responses")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return &r, nil
}

func toolCall(id, name, args string) ai.GenerateResponse {
	return ai.GenerateResponse{Choices: []ai.Choice{{Message: ai.Message{
		Role:      "assistant",
		ToolCalls: []ai.ToolCall{{ID: id, Type: "function", Function: ai.FunctionCall{Name: name, Arguments: args}}},
	}}}, Usage: ai.Usage{TotalTokens: 10}}
}

func text(s string) ai.GenerateResponse {
	return ai.GenerateResponse{Choices: []ai.Choice{{Message: ai.Message{Role: "assistant", Content: s}}}, Usage: ai.Usage{TotalTokens: 5}}
}

func session() *agent.Session {
	s := agent.NewSession()
	wb := sheet.NewWorkbook("q1.csv")
	wb.Add("Sheet1", sheet.Sheet{
		sheet.NewRow([]string{"region", "sales"}, []any{"North", 5.0}),
		sheet.NewRow([]string{"region", "sales"}, []any{"South", 7.0}),
	})
	s.OnWorkbookParsed(wb, nil)
	return s
}

func TestConverseRunsToolCalls(t *testing.T) {
	rt := &scripted{responses: []ai.GenerateResponse{
		toolCall("call_1", "createChart", `{"chartType":"bar","title":"Sales by region"}`),
		text("  Created the chart.  "),
	}}
	s := session()
	a := assistant.New(rt, "test-model")
	turn, err := a.Converse(context.Background(), s, "chart sales by region")
	if err != nil {
		t.Fatalf("Converse: %v", err)
	}
	if turn.Reply != "Created the chart." || len(turn.Calls) != 1 || turn.Usage.TotalTokens != 15 {
		t.Fatalf("unexpected turn: %+v", turn)
	}
	if s.Charts.Len() != 1 {
		t.Fatalf("chart not created")
	}

	first := rt.requests[0]
	if first.Messages[0].Role != "system" || !strings.Contains(first.Messages[0].Content, `"region"`) {
		t.Fatalf("system prompt lacks data context: %s", first.Messages[0].Content)
	}
	var names []string
	for _, tl := range first.Tools {
		names = append(names, tl.Function.Name)
	}
	if !strings.Contains(strings.Join(names, ","), "createChart") {
		t.Fatalf("createChart not offered: %v", names)
	}

	second := rt.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if last.Role != "tool" || last.ToolCallID != "call_1" || !strings.Contains(last.Content, `"source":"workbook"`) {
		t.Fatalf("tool result not sent back: %+v", last)
	}
	if !strings.Contains(second.Messages[0].Content, "Sales by region") {
		t.Fatalf("refreshed context should list the new chart")
	}
}

func TestConverseKeepsHistory(t *testing.T) {
	rt := &scripted{responses: []ai.GenerateResponse{text("hi"), text("again")}}
	a := assistant.New(rt, "m")
	s := session()
	if _, err := a.Converse(context.Background(), s, "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Converse(context.Background(), s, "two"); err != nil {
		t.Fatal(err)
	}
	msgs := rt.requests[1].Messages
	if len(msgs) != 4 || msgs[1].Content != "one" || msgs[2].Content != "hi" || msgs[3].Content != "two" {
		t.Fatalf("history not carried: %+v", msgs)
	}
}

func TestConverseStopsAfterMaxRounds(t *testing.T) {
	rt := &scripted{responses: []ai.GenerateResponse{
		toolCall("a", "analyzeDataSummary", `{}`),
		toolCall("b", "analyzeDataSummary", `{}`),
	}}
	a := assistant.New(rt, "m")
	a.MaxRounds = 2
	turn, err := a.Converse(context.Background(), session(), "loop")
	if err != nil {
		t.Fatal(err)
	}
	if !turn.Exhausted || len(turn.Calls) != 2 || len(rt.requests) != 2 {
		t.Fatalf("expected two rounds then stop: %+v", turn)
	}
}

func TestConverseBadToolCallReportsError(t *testing.T) {
	rt := &scripted{responses: []ai.GenerateResponse{
		toolCall("x", "deleteEverything", `{}`),
		text("sorry"),
	}}
	turn, err := assistant.New(rt, "m").Converse(context.Background(), session(), "go")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(turn.Calls[0].Result, `"error"`) {
		t.Fatalf("unknown tool should produce an error result: %s", turn.Calls[0].Result)
	}
}

func TestConverseRuntimeError(t *testing.T) {
	rt := &scripted{}
	if _, err := assistant.New(rt, "m").Converse(context.Background(), session(), "x"); err == nil {
		t.Fatal("expected runtime error")
	}
}

func TestContextTruncated(t *testing.T) {
	ctx := assistant.Context(session(), 10)
	if len([]rune(ctx)) > 40 {
		t.Fatalf("context exceeds budget: %d runes", len([]rune(ctx)))
	}
}
