// Package middleware decodes Block Kit surfaces at HTTP boundaries.
//
// The net/http middleware here is framework agnostic; the gin and echo
// adapters live in their own modules so the core module does not depend on
// either framework.
package middleware

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/blockkit"
	"github.com/reoring/blockkit/codec"
	"github.com/reoring/blockkit/surface"
)

type ctxKeySurface struct{}

// ContextWithSurface attaches a decoded surface to the context.
func ContextWithSurface(ctx context.Context, s surface.Surface) context.Context {
	return context.WithValue(ctx, ctxKeySurface{}, s)
}

// SurfaceFromContext retrieves the surface stored by ContextWithSurface.
func SurfaceFromContext(ctx context.Context) (surface.Surface, bool) {
	s, ok := ctx.Value(ctxKeySurface{}).(surface.Surface)
	return s, ok
}

// DefaultDecodeOpt returns a recommended default for HTTP JSON boundaries.
//   - Duplicate keys are errors
//   - Bodies are capped at 1 MiB
//   - Decoded surfaces are validated
func DefaultDecodeOpt() codec.DecodeOpt {
	return codec.DecodeOpt{
		Strictness: codec.Strictness{OnDuplicateKey: codec.Error},
		MaxBytes:   1 << 20,
		Validate:   true,
	}
}

// OrDefault returns DefaultDecodeOpt when opt is the zero value.
func OrDefault(opt codec.DecodeOpt) codec.DecodeOpt {
	if opt.Strictness.OnDuplicateKey == codec.Ignore && opt.MaxBytes == 0 && opt.MaxViolations == 0 &&
		!opt.Validate && opt.OnWarning == nil {
		return DefaultDecodeOpt()
	}
	return opt
}

// Decode reads and decodes the request body as a surface.
func Decode(r *http.Request, opt codec.DecodeOpt) (surface.Surface, error) {
	return codec.DecodeFrom(r.Body, opt)
}

// Issue is the response form of one violation.
type Issue struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

// ErrorBody is the JSON body written for a rejected request.
type ErrorBody struct {
	Error  string  `json:"error,omitempty"`
	Issues []Issue `json:"issues,omitempty"`
}

// ErrorPayload maps a decode error to a status code and body: 422 with issues
// for a Report, 413 for oversized bodies and 400 otherwise.
func ErrorPayload(err error) (int, ErrorBody) {
	if r, ok := blockkit.AsReport(err); ok {
		issues := make([]Issue, len(r))
		for i, v := range r {
			issues[i] = Issue{Path: v.Path.Pointer(), Kind: v.Kind, Message: v.Message, Rule: v.Rule}
		}
		return http.StatusUnprocessableEntity, ErrorBody{Issues: issues}
	}
	if errors.Is(err, codec.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge, ErrorBody{Error: err.Error()}
	}
	return http.StatusBadRequest, ErrorBody{Error: err.Error()}
}

// ValidateSurface decodes the request body with opt (DefaultDecodeOpt when
// zero), stores the surface in the request context and calls next. Rejected
// requests get the ErrorPayload response and never reach next.
func ValidateSurface(opt codec.DecodeOpt) func(http.Handler) http.Handler {
	opt = OrDefault(opt)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := Decode(r, opt)
			if err != nil {
				status, body := ErrorPayload(err)
				writeJSON(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSurface(r.Context(), s)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
