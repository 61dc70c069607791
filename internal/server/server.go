// Copyright 2026 Asma Gulbaz

// Inspection server: JSON-RPC tools over the ax core

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/AsmaGulbaz/AXElements/ax"
	"github.com/AsmaGulbaz/AXElements/axdriver"
	"github.com/AsmaGulbaz/AXElements/internal/config"
	"github.com/AsmaGulbaz/AXElements/internal/transport"
)

// InspectServer exposes the ax core over a JSON-RPC tool interface: find,
// read, write, perform, wait, and observe against one accessibility tree.
type InspectServer struct {
	drv    axdriver.Driver
	root   *ax.Element
	bridge *ax.Bridge
	cfg    *config.Config
	logger *slog.Logger
	audit  *AuditLogger
	ctx    context.Context
	cancel context.CancelFunc
	tools  map[string]*Tool
	mu     sync.RWMutex
}

// Tool represents one callable tool.
type Tool struct {
	Handler     func(*ToolCall) (*ToolResult, error)
	InputSchema map[string]any
	Name        string
	Description string
}

// ToolCall represents a tool call request.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult represents a tool call result.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Content represents a content item in a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// NewInspectServer creates a server over the driver, rooted at rootHandle.
func NewInspectServer(cfg *config.Config, logger *slog.Logger, drv axdriver.Driver, rootHandle axdriver.Handle) (*InspectServer, error) {
	root, err := ax.NewElement(drv, rootHandle)
	if err != nil {
		return nil, fmt.Errorf("wrapping root element: %w", err)
	}

	audit, err := NewAuditLogger(cfg.AuditLogPath)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &InspectServer{
		drv:    drv,
		root:   root,
		bridge: ax.NewBridge(drv),
		cfg:    cfg,
		logger: logger,
		audit:  audit,
		ctx:    ctx,
		cancel: cancel,
	}
	s.registerTools()
	return s, nil
}

// Shutdown stops the server and releases its notification subscriptions.
func (s *InspectServer) Shutdown() {
	s.cancel()
	s.bridge.Close()
	if err := s.audit.Close(); err != nil {
		s.logger.Error("closing audit log", "err", err)
	}
	s.logger.Info("inspection server shut down")
}

// registerTools registers all available tools.
func (s *InspectServer) registerTools() {
	s.tools = map[string]*Tool{
		"find_elements": {
			Name:        "find_elements",
			Description: "Find UI elements by type and attribute filters",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"parent": map[string]any{
						"type":        "integer",
						"description": "Handle of the element to search under (defaults to the root)",
					},
					"type_spec": map[string]any{
						"type":        "string",
						"description": "Element type; singular form returns the first match, plural all matches",
					},
					"filters": map[string]any{
						"type":        "object",
						"description": "Attribute name to expected value; string values in /slashes/ match as regular expressions",
					},
				},
			},
			Handler: s.handleFindElements,
		},
		"get_attribute": {
			Name:        "get_attribute",
			Description: "Read a named attribute of an element",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element": map[string]any{"type": "integer", "description": "Element handle"},
					"name":    map[string]any{"type": "string", "description": "Symbolic attribute name"},
				},
				"required": []string{"element", "name"},
			},
			Handler: s.handleGetAttribute,
		},
		"set_attribute": {
			Name:        "set_attribute",
			Description: "Write a named attribute of an element",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element": map[string]any{"type": "integer", "description": "Element handle"},
					"name":    map[string]any{"type": "string", "description": "Symbolic attribute name"},
					"value":   map[string]any{"description": "Value to write"},
				},
				"required": []string{"element", "name", "value"},
			},
			Handler: s.handleSetAttribute,
		},
		"perform_action": {
			Name:        "perform_action",
			Description: "Invoke a named action on an element",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element": map[string]any{"type": "integer", "description": "Element handle"},
					"name":    map[string]any{"type": "string", "description": "Symbolic action name"},
				},
				"required": []string{"element", "name"},
			},
			Handler: s.handlePerformAction,
		},
		"element_tree": {
			Name:        "element_tree",
			Description: "Render the element hierarchy under an element",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element": map[string]any{
						"type":        "integer",
						"description": "Handle to start from (defaults to the root)",
					},
				},
			},
			Handler: s.handleElementTree,
		},
		"wait_element": {
			Name:        "wait_element",
			Description: "Wait for an element matching the filters to appear",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"parent":    map[string]any{"type": "integer", "description": "Handle to wait under (defaults to the root)"},
					"type_spec": map[string]any{"type": "string", "description": "Element type to wait for"},
					"filters":   map[string]any{"type": "object", "description": "Attribute filters"},
					"timeout":   map[string]any{"type": "string", "description": "Wait timeout as a duration string"},
					"interval":  map[string]any{"type": "string", "description": "Poll interval as a duration string"},
				},
			},
			Handler: s.handleWaitElement,
		},
		"wait_vanish": {
			Name:        "wait_vanish",
			Description: "Wait for an element to stop being valid",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element": map[string]any{"type": "integer", "description": "Element handle to watch"},
					"timeout": map[string]any{"type": "string", "description": "Wait timeout as a duration string"},
				},
				"required": []string{"element"},
			},
			Handler: s.handleWaitVanish,
		},
		"wait_notification": {
			Name:        "wait_notification",
			Description: "Wait for a notification to be delivered for an element",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element":      map[string]any{"type": "integer", "description": "Element handle to observe"},
					"notification": map[string]any{"type": "string", "description": "Symbolic notification name"},
					"timeout":      map[string]any{"type": "string", "description": "Wait timeout as a duration string"},
				},
				"required": []string{"element", "notification"},
			},
			Handler: s.handleWaitNotification,
		},
	}
}

// Serve reads and dispatches messages until the transport or context ends.
func (s *InspectServer) Serve(tr transport.Transport) error {
	s.logger.Info("inspection server starting")

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("inspection server stopping, context cancelled")
			return nil
		default:
			msg, err := tr.ReadMessage()
			if err != nil {
				if tr.IsClosed() || err.Error() == "stdin closed" {
					s.logger.Info("inspection server stopping, transport closed")
					return nil
				}
				s.logger.Error("reading message", "err", err)
				continue
			}
			go s.handleMessage(tr, msg)
		}
	}
}

// handleMessage handles a single JSON-RPC message.
func (s *InspectServer) handleMessage(tr transport.Transport, msg *transport.Message) {
	switch msg.Method {
	case "initialize":
		s.reply(tr, &transport.Message{
			JSONRPC: "2.0",
			ID:      msg.ID,
			Result:  []byte(`{"protocolVersion":"2024-11-05","capabilities":{},"serverInfo":{"name":"axelements","version":"0.1.0"}}`),
		})

	case "tools/list":
		s.mu.RLock()
		tools := make([]map[string]any, 0, len(s.tools))
		for _, tool := range s.tools {
			tools = append(tools, map[string]any{
				"name":        tool.Name,
				"description": tool.Description,
				"inputSchema": tool.InputSchema,
			})
		}
		s.mu.RUnlock()

		result, _ := json.Marshal(map[string]any{"tools": tools})
		s.reply(tr, &transport.Message{JSONRPC: "2.0", ID: msg.ID, Result: result})

	case "tools/call":
		s.handleToolCall(tr, msg)

	default:
		s.reply(tr, &transport.Message{
			JSONRPC: "2.0",
			ID:      msg.ID,
			Error: &transport.ErrorObj{
				Code:    transport.ErrCodeMethodNotFound,
				Message: fmt.Sprintf("Method not found: %s", msg.Method),
			},
		})
	}
}

func (s *InspectServer) handleToolCall(tr transport.Transport, msg *transport.Message) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.reply(tr, &transport.Message{
			JSONRPC: "2.0",
			ID:      msg.ID,
			Error: &transport.ErrorObj{
				Code:    transport.ErrCodeInvalidRequest,
				Message: fmt.Sprintf("Invalid request: %v", err),
			},
		})
		return
	}

	s.mu.RLock()
	tool, exists := s.tools[params.Name]
	s.mu.RUnlock()

	if !exists {
		s.reply(tr, &transport.Message{
			JSONRPC: "2.0",
			ID:      msg.ID,
			Error: &transport.ErrorObj{
				Code:    transport.ErrCodeMethodNotFound,
				Message: fmt.Sprintf("Tool not found: %s", params.Name),
			},
		})
		return
	}

	start := timeNow()
	result, err := tool.Handler(&ToolCall{Name: params.Name, Arguments: params.Arguments})
	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case result != nil && result.IsError:
		status = "tool_error"
	}
	s.audit.LogToolCall(params.Name, params.Arguments, status, timeNow().Sub(start))

	if err != nil {
		s.reply(tr, &transport.Message{
			JSONRPC: "2.0",
			ID:      msg.ID,
			Error: &transport.ErrorObj{
				Code:    transport.ErrCodeInternalError,
				Message: err.Error(),
			},
		})
		return
	}

	resultMap := map[string]any{"content": result.Content}
	if result.IsError {
		resultMap["isError"] = true
	}
	resultBytes, _ := json.Marshal(resultMap)
	s.reply(tr, &transport.Message{JSONRPC: "2.0", ID: msg.ID, Result: resultBytes})
}

func (s *InspectServer) reply(tr transport.Transport, msg *transport.Message) {
	if err := tr.WriteMessage(msg); err != nil {
		s.logger.Error("writing response", "err", err)
	}
}
