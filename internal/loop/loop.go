// Package loop drives the bounded tool-calling conversation with the
// completion service: a few non-streaming planning rounds that may run tools,
// then one streaming round that produces the final answer text.
package loop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/stream"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/tools"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/upstream"
)

// maxToolRounds bounds the planning phase. A conversation that still wants
// tools after this many rounds is answered with whatever context it has.
const maxToolRounds = 4

// ToolCall is one function call requested by the model during planning.
type ToolCall struct {
	CallID    string
	Name      string
	Arguments json.RawMessage
}

// Hooks observe the run. Nil hooks are skipped.
type Hooks struct {
	OnDelta      func(text string)
	OnToolCall   func(call ToolCall)
	OnToolResult func(call ToolCall, output any)
}

// Runner executes the plan-then-stream conversation loop.
type Runner struct {
	Client   *upstream.Client
	Executor *tools.Executor
}

// NewRunner creates a Runner over the given upstream client and executor.
func NewRunner(client *upstream.Client, executor *tools.Executor) *Runner {
	return &Runner{Client: client, Executor: executor}
}

// Run drives the conversation to completion. Tool calls execute sequentially
// in the model's order; their outputs are appended to the input so the next
// round sees them. forcedTool, when non-empty, compels that function on the
// first round only.
func (r *Runner) Run(ctx context.Context, instructions string, input []types.ResponsesInputItem, forcedTool string, convo tools.Conversation, hooks Hooks) error {
	toolDefs := tools.Definitions()

	for round := 0; round < maxToolRounds; round++ {
		var choice any = "auto"
		if round == 0 && forcedTool != "" {
			choice = types.ForcedToolChoice(forcedTool)
		}

		calls, err := r.plan(ctx, instructions, input, toolDefs, choice)
		if err != nil {
			return err
		}
		if len(calls) == 0 {
			break
		}

		for _, call := range calls {
			if hooks.OnToolCall != nil {
				hooks.OnToolCall(call)
			}
			output := r.Executor.Execute(call.Name, call.Arguments, convo)
			if hooks.OnToolResult != nil {
				hooks.OnToolResult(call, output)
			}

			encoded, err := json.Marshal(output)
			if err != nil {
				return fmt.Errorf("encode tool output for %s: %w", call.Name, err)
			}
			input = append(input,
				types.ResponsesInputItem{
					Type:      "function_call",
					Name:      call.Name,
					Arguments: string(call.Arguments),
					CallID:    call.CallID,
				},
				types.ResponsesInputItem{
					Type:   "function_call_output",
					CallID: call.CallID,
					Output: string(encoded),
				},
			)
		}
	}

	return r.streamFinal(ctx, instructions, input, hooks)
}

// plan runs one non-streaming round and returns the function calls the model
// requested, in output order.
func (r *Runner) plan(ctx context.Context, instructions string, input []types.ResponsesInputItem, toolDefs []types.ResponsesTool, choice any) ([]ToolCall, error) {
	resp, err := r.Client.Do(ctx, &upstream.Request{
		Instructions: instructions,
		Input:        input,
		Tools:        toolDefs,
		ToolChoice:   choice,
		Stream:       false,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read plan response: %w", err)
	}

	var calls []ToolCall
	for _, item := range gjson.GetBytes(raw, "output").Array() {
		if item.Get("type").String() != "function_call" {
			continue
		}
		name := item.Get("name").String()
		if name == "" {
			continue
		}
		args := item.Get("arguments").String()
		if args == "" {
			args = "{}"
		}
		calls = append(calls, ToolCall{
			CallID:    item.Get("call_id").String(),
			Name:      name,
			Arguments: json.RawMessage(args),
		})
	}
	return calls, nil
}

// streamFinal runs the streaming round and relays text deltas. Tools are
// withheld so the model must answer in text.
func (r *Runner) streamFinal(ctx context.Context, instructions string, input []types.ResponsesInputItem, hooks Hooks) error {
	resp, err := r.Client.Do(ctx, &upstream.Request{
		Instructions: instructions,
		Input:        input,
		Stream:       true,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	reader := stream.NewReader(resp.Body)
	for {
		evt, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				slog.Debug("stream canceled by client")
				return ctx.Err()
			}
			return fmt.Errorf("read stream: %w", err)
		}

		switch evt.Kind {
		case stream.KindTextDelta:
			if hooks.OnDelta != nil {
				hooks.OnDelta(evt.Text)
			}
		case stream.KindCompleted:
			return nil
		case stream.KindFailed:
			msg := evt.ErrMessage
			if msg == "" {
				msg = "upstream reported a failed response"
			}
			return errors.New(msg)
		}
	}
}
