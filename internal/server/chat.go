package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/guardrail"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/loop"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/metrics"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/sse"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/stock"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/tools"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/upstream"
)

const missingKeyMessage = "OPENAI_API_KEY is missing"

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	metrics.ChatRequests.Inc()

	var req types.ChatRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	messages := types.CleanMessages(req.Messages)
	userText := types.LastUserText(messages)
	lang := types.DetectLang(userText)

	out := sse.NewWriter(w)

	// Hard safety boundary: checked once, before any other logic. A match
	// ends the turn without touching tools or the upstream.
	if advisory := guardrail.Check(userText); advisory != "" {
		metrics.GuardrailBlocks.Inc()
		out.Delta(advisory)
		out.Done()
		return
	}

	if strings.TrimSpace(s.Config.APIKey) == "" {
		out.Error(missingKeyMessage)
		return
	}

	wasStockFlow := stock.LastAssistantWasStockQuestion(messages)
	continueStockFlow := stock.IsStockQuestion(userText) ||
		wasStockFlow ||
		(stock.IsYesNo(userText) && wasStockFlow)

	// A bare "yes" to our own offer to check a branch needs no model turn,
	// just the branch list.
	if continueStockFlow && s.resolver.Store(userText) == nil &&
		stock.IsYesNo(userText) && stock.LastAssistantAskedForStore(messages) {
		out.Delta(whichBranchReply(s, lang))
		out.Done()
		return
	}

	forcedTool := ""
	if continueStockFlow {
		forcedTool = tools.NameCheckStock
	}

	convo := tools.Conversation{Messages: messages, UserText: userText, Lang: lang}
	hooks := loop.Hooks{
		OnDelta: out.Delta,
		OnToolCall: func(call loop.ToolCall) {
			out.ToolCall(callID(call), call.Name, call.Arguments)
		},
		OnToolResult: func(call loop.ToolCall, output any) {
			_, failed := output.(tools.Failure)
			metrics.ToolCalls.WithLabelValues(call.Name, metrics.ToolOutcome(!failed)).Inc()
			out.ToolResult(callID(call), call.Name, output)
		},
	}

	err := s.Runner.Run(r.Context(), buildInstructions(lang, types.SystemExtras(messages)),
		types.ConversationInput(messages), forcedTool, convo, hooks)
	if err != nil {
		s.writeStreamError(out, r, err)
		return
	}
	out.Done()
}

// writeStreamError maps a loop failure onto the terminal frame. Client
// cancellation is suppressed entirely.
func (s *Server) writeStreamError(out *sse.Writer, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || r.Context().Err() != nil {
		metrics.StreamCancels.Inc()
		slog.Debug("chat stream canceled by client")
		return
	}
	if errors.Is(err, upstream.ErrNoAPIKey) {
		out.Error(missingKeyMessage)
		return
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		metrics.UpstreamErrors.Inc()
	}
	slog.Error("chat stream failed", "error", err)
	out.Error(err.Error())
}

// callID falls back to a generated ID so client tool frames always pair up,
// even when the upstream omits call_id.
func callID(call loop.ToolCall) string {
	if call.CallID != "" {
		return call.CallID
	}
	return "call_" + uuid.NewString()
}

// whichBranchReply lists the branches the user may pick, nearest first.
func whichBranchReply(s *Server, lang types.Lang) string {
	stores := s.Catalog.StoresByRank()
	names := make([]string, 0, len(stores))
	for _, st := range stores {
		names = append(names, stock.LocationName(st.Location, lang))
	}
	list := strings.Join(names, ", ")
	if lang == types.LangHebrew {
		return fmt.Sprintf("מעולה, איזה סניף תרצה לבדוק? (%s)", list)
	}
	return fmt.Sprintf("Great, which store would you like me to check? (%s)", list)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
