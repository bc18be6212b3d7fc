// Package rpcserver implements the JSON-RPC method surface and profile
// policy from §4.7: a Dispatcher resolves a method name and a params map to
// a result map shaped per §6's success/error wrapper, gating dispatch by
// the current AgentControlConfig.Profile's allowlist.
package rpcserver

import (
	"sync"
	"time"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/txprocessor"
	"go.uber.org/zap"
)

// ResultError is a domain-level rejection that Dispatch folds into the
// error-shaped result wrapper rather than a framing-level HTTP error.
type ResultError struct {
	Code    int
	HasCode bool
	Message string
}

func (e *ResultError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func resultErr(msg string) error {
	return &ResultError{Message: msg}
}

func resultErrCode(code int, msg string) error {
	return &ResultError{Code: code, HasCode: true, Message: msg}
}

// BuildVersion is reported by server_info.
const BuildVersion = "0.1.0-edu"

// Dispatcher holds every collaborator an RPC method handler needs: the
// ledger manager, the transaction processor, and the mutable agent control
// configuration. Methods never mutate the ledger or account state directly
// except submit (via the processor) and agent_config_set (its own config).
type Dispatcher struct {
	mu sync.Mutex

	manager   *ledger.Manager
	processor *txprocessor.Processor
	config    AgentControlConfig
	startedAt time.Time
	log       *zap.Logger
}

// NewDispatcher returns a Dispatcher over manager and processor, starting
// in the research profile. log may be nil.
func NewDispatcher(manager *ledger.Manager, processor *txprocessor.Processor, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		manager:   manager,
		processor: processor,
		config:    DefaultAgentControlConfig(),
		startedAt: time.Now(),
		log:       log,
	}
}

type methodFunc func(*Dispatcher, map[string]any) (map[string]any, error)

var methodTable = map[string]methodFunc{
	"server_info":      (*Dispatcher).serverInfo,
	"ledger":           (*Dispatcher).getLedger,
	"ledger_current":   (*Dispatcher).ledgerCurrent,
	"fee":              (*Dispatcher).fee,
	"account_info":     (*Dispatcher).accountInfo,
	"submit":           (*Dispatcher).submit,
	"ping":             (*Dispatcher).ping,
	"random":           (*Dispatcher).random,
	"agent_status":     (*Dispatcher).agentStatus,
	"agent_config_get": (*Dispatcher).agentConfigGet,
	"agent_config_set": (*Dispatcher).agentConfigSet,
}

// Dispatch resolves method against the profile allowlist and the method
// table, returning a result map already shaped per §6 (status plus either
// the method's fields or error_code/error_message).
func (d *Dispatcher) Dispatch(method string, params map[string]any) map[string]any {
	d.mu.Lock()
	profile := d.config.Profile
	d.mu.Unlock()

	if !Allowed(profile, method) {
		return errorResult(0, false, "Method blocked by profile policy")
	}

	handler, ok := methodTable[method]
	if !ok {
		return errorResult(0, false, "unknown method")
	}

	fields, err := handler(d, params)
	if err != nil {
		if re, ok := err.(*ResultError); ok {
			return errorResult(re.Code, re.HasCode, re.Message)
		}
		return errorResult(0, false, err.Error())
	}
	return successResult(fields)
}

func successResult(fields map[string]any) map[string]any {
	out := map[string]any{"status": "success"}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func errorResult(code int, hasCode bool, msg string) map[string]any {
	out := map[string]any{"status": "error", "error_message": msg}
	if hasCode {
		out["error_code"] = code
	}
	return out
}

func rejectAnyParams(params map[string]any) error {
	if len(params) != 0 {
		return resultErr("this method accepts no parameters")
	}
	return nil
}
