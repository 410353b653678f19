package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/blockkit/codec"
	"github.com/reoring/blockkit/middleware"
	"github.com/reoring/blockkit/surface"
)

func serve(t *testing.T, opt codec.DecodeOpt, body string) (*httptest.ResponseRecorder, surface.Surface) {
	t.Helper()
	var got surface.Surface
	h := middleware.ValidateSurface(opt)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := middleware.SurfaceFromContext(r.Context())
		if !ok {
			t.Fatalf("surface missing from context")
		}
		got = s
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/views", strings.NewReader(body)))
	return rec, got
}

func TestValidateSurface_Passes(t *testing.T) {
	rec, s := serve(t, codec.DecodeOpt{}, `{"text":"hello"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if s.Kind() != surface.KindMessage {
		t.Fatalf("unexpected surface %T", s)
	}
}

func TestValidateSurface_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		opt    codec.DecodeOpt
		body   string
		status int
		want   middleware.ErrorBody
	}{
		{
			name:   "violations",
			body:   `{"type":"modal","title":{"type":"plain_text","text":"x"},"blocks":[{"type":"header","text":{"type":"mrkdwn","text":"x"}}]}`,
			status: http.StatusUnprocessableEntity,
			want: middleware.ErrorBody{Issues: []middleware.Issue{
				{Path: "/blocks/0/text", Kind: "required_variant", Message: "must be plain_text"},
			}},
		},
		{
			name:   "duplicate keys",
			body:   `{"text":"a","text":"b"}`,
			status: http.StatusUnprocessableEntity,
			want:   middleware.ErrorBody{Issues: []middleware.Issue{{Path: "/text", Kind: "duplicate_key", Message: "key 'text' is duplicated"}}},
		},
		{
			name:   "too large",
			opt:    codec.DecodeOpt{MaxBytes: 4},
			body:   `{"text":"hello"}`,
			status: http.StatusRequestEntityTooLarge,
			want:   middleware.ErrorBody{Error: "codec: input exceeds size limit (4 bytes)"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := serve(t, tc.opt, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body)
			}
			var got middleware.ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateSurface_MalformedBody(t *testing.T) {
	rec, _ := serve(t, codec.DecodeOpt{}, `{"type":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
