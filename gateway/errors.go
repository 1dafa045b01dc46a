package gateway

import (
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// Kind tags the closed set of failures the gateway middleware produces.
type Kind int

const (
	KindMethodNotSupported Kind = iota
	KindRateLimited
	KindGatewayTimeout
	KindMalformedBody
	KindOpaqueUpstream
	KindExhaustedRetries
)

// Error is a classified gateway failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Fixed messages of the wire contract. The retriable ones deliberately contain
// a compatibility phrase so their string form stays classifiable by callers
// doing substring checks.
func errMethodNotSupported() *Error {
	return &Error{Kind: KindMethodNotSupported, Message: "method not supported by the gateway"}
}

func errRateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: "request is being rate limited"}
}

func errGatewayTimeout() *Error {
	return &Error{Kind: KindGatewayTimeout, Message: "Gateway timeout: the request took too long to process"}
}

func errMalformedBody(cause error) *Error {
	return &Error{Kind: KindMalformedBody, Message: "SyntaxError: malformed JSON body from the gateway", Cause: cause}
}

func errOpaqueUpstream(status int, body string) *Error {
	return &Error{Kind: KindOpaqueUpstream, Message: fmt.Sprintf("unexpected status %d from the gateway: %s", status, body)}
}

func errExhaustedRetries(cause error) *Error {
	return &Error{Kind: KindExhaustedRetries, Message: "gateway middleware: all retries exhausted", Cause: cause}
}

// retriablePhrases is the compatibility shim for failures whose type is not
// under our control: raw transport errors and opaque upstream body text.
var retriablePhrases = []string{
	"Gateway timeout",
	"ETIMEDOUT",
	"ECONNRESET",
	"SyntaxError",
}

// isRetriable classifies a single attempt failure. Failures produced by this
// package carry an explicit kind; everything else falls back to native
// net/syscall checks and then to substring matching against the failure text.
func isRetriable(err error) bool {
	var gerr *Error
	if errors.As(err, &gerr) {
		switch gerr.Kind {
		case KindRateLimited, KindGatewayTimeout, KindMalformedBody:
			return true
		case KindMethodNotSupported, KindExhaustedRetries:
			return false
		case KindOpaqueUpstream:
			return matchesRetriablePhrase(gerr.Message)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	return matchesRetriablePhrase(err.Error())
}

func matchesRetriablePhrase(s string) bool {
	for _, phrase := range retriablePhrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
