package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/formfill/rules"
)

// RegisterMCP registers the formfill tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerFillTool(srv)
	s.registerAddRuleTool(srv)
	s.registerListRulesTool(srv)
	s.registerDeleteRuleTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		var res mcp.CallToolResult
		res.SetError(fmt.Errorf("marshal: %w", err))
		return &res, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

func errResult(err error) (*mcp.CallToolResult, error) {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res, nil
}

func (s *Service) registerFillTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "formfill_fill",
		Description: "Fill every form field of an HTML document (or a live URL) with synthetic values and return the filled document plus a report.",
		InputSchema: inputSchema(map[string]any{
			"html": map[string]any{"type": "string", "description": "Inline HTML document to fill"},
			"url":  map[string]any{"type": "string", "description": "Live page URL to fill (requires a browser)"},
			"seed": map[string]any{"type": "integer", "description": "Deterministic seed; 0 = random"},
		}, nil),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var fr FillRequest
		if err := json.Unmarshal(req.Params.Arguments, &fr); err != nil {
			return errResult(fmt.Errorf("invalid arguments: %w", err))
		}
		resp, err := s.Fill(ctx, fr)
		if err != nil {
			return errResult(err)
		}
		return textResult(resp)
	})
}

func (s *Service) registerAddRuleTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "formfill_add_rule",
		Description: "Store a custom field rule. Fields whose fingerprint matches one of the rule's patterns get values from the rule's strategy.",
		InputSchema: inputSchema(map[string]any{
			"tier":     map[string]any{"type": "string", "enum": []string{"profile", "global"}},
			"name":     map[string]any{"type": "string", "description": "Human-readable rule name"},
			"match":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Case-insensitive regex patterns matched against field fingerprints"},
			"type":     map[string]any{"type": "string", "description": "Synthesis strategy: text, username, first-name, last-name, full-name, organization, email, date, number, telephone, regex, alphanumeric, randomized-list"},
			"template": map[string]any{"type": "string", "description": "Strategy template (regex pattern, phone/alphanumeric template, email domain, date layout)"},
			"min":      map[string]any{"type": "integer"},
			"max":      map[string]any{"type": "integer"},
			"min_date": map[string]any{"type": "string"},
			"max_date": map[string]any{"type": "string"},
			"list":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Values for randomized-list rules"},
		}, []string{"tier", "match", "type"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args addRuleRequest
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errResult(fmt.Errorf("invalid arguments: %w", err))
		}
		if err := s.AddRule(ctx, args.Tier, &args.Rule); err != nil {
			return errResult(err)
		}
		return textResult(args.Rule)
	})
}

func (s *Service) registerListRulesTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "formfill_list_rules",
		Description: "List the stored custom field rules of both tiers.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	srv.AddTool(tool, func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile, global, err := s.ListRules(ctx)
		if err != nil {
			return errResult(err)
		}
		return textResult(map[string][]rules.Rule{
			"profile": orEmpty(profile),
			"global":  orEmpty(global),
		})
	})
}

func (s *Service) registerDeleteRuleTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "formfill_delete_rule",
		Description: "Delete a stored custom field rule by ID.",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Rule ID"},
		}, []string{"id"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errResult(fmt.Errorf("invalid arguments: %w", err))
		}
		if err := s.DeleteRule(ctx, args.ID); err != nil {
			return errResult(err)
		}
		return textResult(map[string]string{"status": "deleted", "id": args.ID})
	})
}
