// Package consensus implements the federated, phase-based consensus round
// described in §4.6: a UNL-weighted agreement vote over successive
// thresholds, driven by explicit ticks rather than a goroutine scheduler, so
// that the single-threaded caller in cmd/agentd fully controls timing.
package consensus

import "fmt"

// ErrorCode is the stable taxonomy for consensus-round rejections, kept in
// the teacher's ErrorCode/TxError shape (formerly consensus/errors.go).
type ErrorCode string

const (
	ErrInvalidProposal    ErrorCode = "InvalidProposal"
	ErrUntrustedValidator ErrorCode = "UntrustedValidator"
)

// RoundError pairs a stable Code with a human Msg.
type RoundError struct {
	Code ErrorCode
	Msg  string
}

func (e *RoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func roundErr(code ErrorCode, msg string) error {
	return &RoundError{Code: code, Msg: msg}
}
