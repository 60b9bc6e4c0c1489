package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	agui "github.com/spetersoncode/agui"
	"github.com/spetersoncode/agui/event"
)

// EchoHandler runs a scripted agent over SSE: it echoes the last user
// message, requests a client-side tool call when asked to, and counts
// messages in shared state.
type EchoHandler struct {
	logger *slog.Logger
}

// NewEchoHandler creates a handler logging through the given logger.
func NewEchoHandler(logger *slog.Logger) *EchoHandler {
	return &EchoHandler{logger: logger}
}

// ServeHTTP handles POST requests to run the agent and stream events via SSE.
func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		h.logger.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input agui.RunAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	input = input.Prepare()

	log := h.logger.With("run_id", input.RunID, "thread_id", input.ThreadID)
	log.Info("run started", "message_count", len(input.Messages), "tool_count", len(input.Tools))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	emit := func(ev event.Event) bool {
		data, err := json.Marshal(ev)
		if err != nil {
			log.Error("marshal event", "type", ev.Type(), "error", err)
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			log.Debug("client disconnected", "error", err)
			return false
		}
		flusher.Flush()
		return true
	}

	h.run(input, emit)
	log.Info("run finished", "duration", time.Since(start))
}

// run emits the scripted event sequence for one request. emit reports
// whether the client is still connected; the script stops on false.
func (h *EchoHandler) run(input agui.RunAgentInput, emit func(event.Event) bool) {
	if !emit(event.NewRunStarted(input.ThreadID, input.RunID)) {
		return
	}

	// Count every message the client has sent so far in shared state.
	counter := event.NewStateDelta([]event.PatchOperation{{
		Op:    "add",
		Path:  "/messageCount",
		Value: json.RawMessage(fmt.Sprintf("%d", len(input.Messages))),
	}})
	if !emit(counter) {
		return
	}

	prompt := lastUserContent(input.Messages)

	// "use <tool> <args...>" requests a client-side tool invocation.
	if name, args, ok := parseToolRequest(prompt, input.Tools); ok {
		callID := agui.GenerateToolCallID()
		if !emit(event.NewToolCallStart(callID, name)) {
			return
		}
		if !emit(event.NewToolCallArgs(callID, args)) {
			return
		}
		if !emit(event.NewToolCallEnd(callID)) {
			return
		}
		emit(event.NewRunFinished(input.ThreadID, input.RunID))
		return
	}

	reply := "You said: " + prompt
	if prompt == "" {
		reply = "Hello! Send a message and I will echo it back."
	}

	messageID := agui.GenerateMessageID()
	if !emit(event.NewTextMessageStart(messageID)) {
		return
	}
	for _, word := range strings.SplitAfter(reply, " ") {
		if !emit(event.NewTextMessageContent(messageID, word)) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !emit(event.NewTextMessageEnd(messageID)) {
		return
	}

	emit(event.NewRunFinished(input.ThreadID, input.RunID))
}

func lastUserContent(messages []agui.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == agui.RoleUser && messages[i].Content != nil {
			return *messages[i].Content
		}
	}
	return ""
}

// parseToolRequest matches prompts of the form "use <tool> <message>" against
// the tools the client advertised in the run input.
func parseToolRequest(prompt string, tools []agui.Tool) (name, args string, ok bool) {
	fields := strings.Fields(prompt)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "use") {
		return "", "", false
	}
	for _, t := range tools {
		if t.Name == fields[1] {
			payload, _ := json.Marshal(map[string]string{
				"message": strings.Join(fields[2:], " "),
			})
			return t.Name, string(payload), true
		}
	}
	return "", "", false
}
