package lsp

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// JSONRPCMessage is a JSON-RPC 2.0 envelope. Requests carry ID+Method,
// notifications carry Method only, responses carry ID with Result or Error.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError is the error member of a failed response.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes used by the dispatcher.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// readFrame consumes one Content-Length framed message from the input.
// Unknown headers are skipped; a frame without Content-Length is an error.
func (s *Server) readFrame() (*JSONRPCMessage, error) {
	length := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			length, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("malformed Content-Length %q: %w", v, err)
			}
		}
	}
	if length <= 0 {
		return nil, fmt.Errorf("frame missing Content-Length header")
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("short read on frame body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("bad JSON-RPC payload: %w", err)
	}
	return &msg, nil
}

// sendResponse answers a request. Exactly one of result and rpcErr is set.
func (s *Server) sendResponse(id *json.RawMessage, result any, rpcErr *JSONRPCError) {
	msg := JSONRPCMessage{JSONRPC: "2.0", ID: id, Error: rpcErr}
	if rpcErr == nil {
		body, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("Failed to marshal result", "error", err)
			return
		}
		msg.Result = body
	}
	s.writeFrame(&msg)
}

// sendNotification pushes a server-initiated message (no ID, no reply).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{JSONRPC: "2.0", Method: method}
	if params != nil {
		body, err := json.Marshal(params)
		if err != nil {
			s.logger.Error("Failed to marshal notification", "method", method, "error", err)
			return
		}
		msg.Params = body
	}
	s.writeFrame(&msg)
}

// writeFrame serializes msg with its Content-Length header. The mutex keeps
// frames whole when handlers and diagnostics publish concurrently.
func (s *Server) writeFrame(msg *JSONRPCMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Failed to marshal frame", "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(body), body); err != nil {
		s.logger.Error("Failed to write frame", "error", err)
	}
}
