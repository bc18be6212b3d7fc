// Package transport fronts an rpcserver.Dispatcher with the HTTP surface
// fixed by §6: JSON-RPC POST routes plus read-only GET diagnostics routes,
// all framing and body-size validation handled here so the dispatcher
// itself never sees malformed input. Routing follows the teacher-adjacent
// gorilla/mux pattern used for walletserver/routes/routes.go in the pack.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/SMC17/rippled-zig-sub000/rpcserver"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxBodyBytes is the JSON-RPC body cap from §4.7.
const maxBodyBytes = 32 * 1024

var methodNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// Server wires an rpcserver.Dispatcher behind gorilla/mux.
type Server struct {
	dispatcher *rpcserver.Dispatcher
	log        *zap.Logger
	router     *mux.Router
}

// NewServer builds the full route table described in §6.
func NewServer(dispatcher *rpcserver.Dispatcher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{dispatcher: dispatcher, log: log, router: mux.NewRouter()}

	s.router.HandleFunc("/", s.handleJSONRPC).Methods(http.MethodPost)
	s.router.HandleFunc("/jsonrpc", s.handleJSONRPC).Methods(http.MethodPost)
	s.router.HandleFunc("/server_info", s.handleGetMethod("server_info")).Methods(http.MethodGet)
	s.router.HandleFunc("/ledger", s.handleGetMethod("ledger")).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(notFound)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
}

type jsonRPCRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxBodyBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "payload too large"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "failed to read request body"})
		return
	}
	if len(body) > maxBodyBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "payload too large"})
		return
	}
	if r.ContentLength >= 0 && int64(len(body)) != r.ContentLength {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Incomplete request body"})
		return
	}
	if len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "request body required"})
		return
	}

	var req jsonRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON"})
		return
	}
	if !methodNamePattern.MatchString(req.Method) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid method name"})
		return
	}

	params, err := decodeParams(req.Params)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid params"})
		return
	}

	result := s.dispatcher.Dispatch(req.Method, params)
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// decodeParams accepts either a JSON object or a single-element array
// containing an object, per §6's `<object>|[<object>]` grammar. An empty
// array is treated as no params.
func decodeParams(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var asObject map[string]any
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return asObject, nil
	}

	var asArray []map[string]any
	if err := json.Unmarshal(raw, &asArray); err == nil && len(asArray) <= 1 {
		if len(asArray) == 0 {
			return map[string]any{}, nil
		}
		return asArray[0], nil
	}

	return nil, errors.New("params must be an object or a single-element array of one")
}

func (s *Server) handleGetMethod(method string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := map[string]any{}
		if idx := r.URL.Query().Get("index"); idx != "" {
			if n, err := strconv.ParseFloat(idx, 64); err == nil {
				params["index"] = n
			}
		}
		result := s.dispatcher.Dispatch(method, params)
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatcher.Dispatch("server_info", nil))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
