// Package stdio serves MCP as one JSON-RPC message per line over a reader
// and writer pair, normally stdin and stdout.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
)

// maxLine bounds a single message. Tool arguments are small, but
// import and bulk calls can carry a few hundred ids.
const maxLine = 4 << 20

// RequestHandler is the part of mcp.Service the transport needs.
type RequestHandler interface {
	HandleRequest(ctx context.Context, request mcp.JSONRPCRequest) mcp.HTTPResponse
}

type Server struct {
	handler RequestHandler
	logger  *slog.Logger
	out     *bufio.Writer
}

func NewServer(handler RequestHandler, logger *slog.Logger) *Server {
	return &Server{handler: handler, logger: logger}
}

// Serve reads requests from r until EOF or until ctx is done, writing
// replies to w. Requests are handled in order, one at a time.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.out = bufio.NewWriter(w)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	s.logger.Info("stdio transport ready")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stdio transport stopping", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading stdin: %w", err)
					}
				default:
				}
				s.logger.Info("stdin closed")
				return nil
			}
			if err := s.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) error {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}

	var req mcp.JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("Failed to parse JSON-RPC request", "error", err)
		resp := mcp.NewErrorHTTPResponse(json.RawMessage("null"), mcp.ParseError, "Parse error", err.Error(), http.StatusOK)
		return s.write(resp.JSONRPCResponse)
	}

	resp := s.handler.HandleRequest(ctx, req)
	if isNotification(req) {
		return nil
	}
	return s.write(resp.JSONRPCResponse)
}

func (s *Server) write(resp mcp.JSONRPCResponse) error {
	body, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Failed to marshal JSON-RPC response", "error", err)
		fallback := mcp.NewErrorHTTPResponse(resp.ID, mcp.InternalError, "Internal error", "Failed to marshal response", http.StatusOK)
		if body, err = json.Marshal(fallback.JSONRPCResponse); err != nil {
			return err
		}
	}

	if _, err := s.out.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}
	return s.out.Flush()
}

// isNotification reports a message without an id. An explicit null id is
// still a request.
func isNotification(req mcp.JSONRPCRequest) bool {
	return len(req.ID) == 0
}
