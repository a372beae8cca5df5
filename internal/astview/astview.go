// Package astview provides a structured AST view of decoded messages, built
// on shape-core's schema node types. It is not on the decoder/encoder hot
// path: it exists as an alternate equality/diagnostic representation, the
// way the teacher's internal/parser package produced an ObjectNode from a
// fastparser.Request for debugging and interchange. This package does the
// same for message.Request / message.Response directly, since this repo's
// decoder already hands callers a structured message — there is no wire
// text left to re-parse.
package astview

import (
	"fmt"
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-httpcodec/message"
)

var zeroPos = ast.Position{}

// RequestNode converts req to an AST ObjectNode:
//
//	{ "type": "request", "method": "POST", "target": "/api",
//	  "version": "HTTP/1.1",
//	  "headers": [{"key": "Host", "value": "example.com"}, ...],
//	  "body": "..." }
func RequestNode(req *message.Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(req.Method, zeroPos),
		"target":  ast.NewLiteralNode(req.Target, zeroPos),
		"version": ast.NewLiteralNode(req.Version, zeroPos),
		"headers": headersToNode(req.Headers),
	}
	if req.Body != nil {
		props["body"] = ast.NewLiteralNode(string(req.Body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseNode converts resp to an AST ObjectNode:
//
//	{ "type": "response", "version": "HTTP/1.1", "statusCode": 200,
//	  "reason": "OK",
//	  "headers": [{"key": "Content-Type", "value": "text/plain"}, ...],
//	  "body": "..." }
func ResponseNode(resp *message.Response) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", zeroPos),
		"version":    ast.NewLiteralNode(resp.Version, zeroPos),
		"statusCode": ast.NewLiteralNode(int64(resp.StatusCode), zeroPos),
		"reason":     ast.NewLiteralNode(resp.ReasonPhrase, zeroPos),
		"headers":    headersToNode(resp.Headers),
	}
	if resp.Body != nil {
		props["body"] = ast.NewLiteralNode(string(resp.Body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// NodeToRequest converts an ObjectNode produced by RequestNode back to a
// *message.Request.
func NodeToRequest(node ast.SchemaNode) (*message.Request, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("astview: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	req := &message.Request{}
	if v, ok := props["method"]; ok {
		req.Method = literalString(v)
	}
	if v, ok := props["target"]; ok {
		req.Target = literalString(v)
	}
	if v, ok := props["version"]; ok {
		req.Version = literalString(v)
	}
	if v, ok := props["headers"]; ok {
		hdrs, err := nodeToHeaders(v)
		if err != nil {
			return nil, err
		}
		req.Headers = hdrs
	}
	if v, ok := props["body"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if s, ok := lit.Value().(string); ok {
				req.Body = []byte(s)
			}
		}
	}
	return req, nil
}

// NodeToResponse converts an ObjectNode produced by ResponseNode back to a
// *message.Response.
func NodeToResponse(node ast.SchemaNode) (*message.Response, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("astview: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	resp := &message.Response{}
	if v, ok := props["version"]; ok {
		resp.Version = literalString(v)
	}
	if v, ok := props["statusCode"]; ok {
		resp.StatusCode = literalInt(v)
	}
	if v, ok := props["reason"]; ok {
		resp.ReasonPhrase = literalString(v)
	}
	if v, ok := props["headers"]; ok {
		hdrs, err := nodeToHeaders(v)
		if err != nil {
			return nil, err
		}
		resp.Headers = hdrs
	}
	if v, ok := props["body"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if s, ok := lit.Value().(string); ok {
				resp.Body = []byte(s)
			}
		}
	}
	return resp, nil
}

// ToInterface converts an AST node to native Go types (map/slice/scalar).
func ToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = ToInterface(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = ToInterface(v)
		}
		return m
	default:
		return nil
	}
}

func headersToNode(headers message.Headers) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(headers))
	for i, h := range headers {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(h.Name, zeroPos),
			"value": ast.NewLiteralNode(h.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

func nodeToHeaders(node ast.SchemaNode) (message.Headers, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("astview: expected ArrayDataNode for headers, got %T", node)
	}
	elements := arr.Elements()
	headers := make(message.Headers, 0, len(elements))
	for _, elem := range elements {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		var h message.Header
		if v, ok := props["key"]; ok {
			h.Name = literalString(v)
		}
		if v, ok := props["value"]; ok {
			h.Value = literalString(v)
		}
		headers = append(headers, h)
	}
	return headers, nil
}

func literalString(node ast.SchemaNode) string {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return ""
	}
	s, _ := lit.Value().(string)
	return s
}

func literalInt(node ast.SchemaNode) int {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return 0
	}
	switch v := lit.Value().(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}
