/*
Package mcp implements the MCP server that exposes the discovery engine.

The server uses stdio transport (newline-delimited JSON-RPC 2.0) and
exposes these tools:
  - quotes_search: run a search with filters
  - quotes_suggest: completions for a partial query
  - quotes_history: recent searches (optionally clearing them)
  - quotes_save_search, quotes_load_search, quotes_delete_search,
    quotes_saved_searches: saved search management
  - quotes_analytics, quotes_insights: usage statistics
  - quotes_recommend, quotes_related: recommendations and related quotes
  - quotes_reload_corpus: re-read the corpus file
*/
package mcp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/SravanKumarPolu/Boostlly-sub001/internal/corpus"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/engine"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/search"
	"github.com/SravanKumarPolu/Boostlly-sub001/internal/version"
)

// maxLineSize bounds one JSON-RPC message.
const maxLineSize = 4 << 20

// CorpusLoader re-reads the corpus for quotes_reload_corpus.
type CorpusLoader func() (*corpus.Document, error)

// Server serves one engine session over JSON-RPC.
type Server struct {
	session *engine.Session
	reload  CorpusLoader
	logger  *zap.Logger
}

// NewServer creates a server. reload may be nil, in which case
// quotes_reload_corpus reports an error.
func NewServer(session *engine.Session, reload CorpusLoader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{session: session, reload: reload, logger: logger.Named("mcp")}
}

// Run serves on stdin/stdout until stdin is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads requests from r and writes responses to w, one per line.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.logger.Warn("bad request", zap.Error(err))
			response = &MCPResponse{
				JSONRPC: "2.0",
				Error:   &MCPError{Code: -32700, Message: err.Error()},
			}
		}
		if response == nil {
			continue
		}
		if err := enc.Encode(response); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errInvalidArguments marks tool argument decoding failures.
var errInvalidArguments = errors.New("invalid arguments")

func (s *Server) handleRequest(data []byte) (*MCPResponse, error) {
	var req MCPRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req), nil
	case "notifications/initialized":
		return nil, nil
	case "ping":
		return &MCPResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{}}, nil
	case "tools/list":
		return &MCPResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{"tools": toolDefinitions()}}, nil
	case "tools/call":
		return s.handleToolsCall(&req), nil
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32601, Message: "Method not found"},
		}, nil
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "quote-discovery",
				"version": version.Version,
			},
		},
	}
}

func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32602, Message: fmt.Sprintf("invalid params: %v", err)},
		}
	}

	handler, ok := s.tools()[params.Name]
	if !ok {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32602, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}
	}

	result, err := handler(params.Arguments)
	if err != nil {
		code := -32000
		if errors.Is(err, errInvalidArguments) {
			code = -32602
		}
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: code, Message: err.Error()},
		}
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32603, Message: fmt.Sprintf("encode result: %v", err)},
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(text),
				},
			},
		},
	}
}

// decodeArgs unmarshals raw into dst. Missing arguments leave dst unchanged.
func decodeArgs(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// criteriaArgs decodes search criteria on top of the default advanced filters.
func criteriaArgs(raw json.RawMessage) (search.Criteria, error) {
	c := search.Criteria{Advanced: search.DefaultAdvancedFilters()}
	err := decodeArgs(raw, &c)
	return c, err
}
