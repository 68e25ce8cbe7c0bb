package pagination

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		target string
		want   Params
	}{
		{"/", Params{}},
		{"/?limit=50&offset=10", Params{Limit: 50, Offset: 10}},
		{"/?limit=9999", Params{Limit: MaxLimit}},
		{"/?limit=-3&offset=-1", Params{}},
		{"/?limit=abc&offset=xyz", Params{}},
	}
	for _, tt := range tests {
		if got := paramsFor(tt.target); got != tt.want {
			t.Errorf("FromContext(%s) = %+v, want %+v", tt.target, got, tt.want)
		}
	}
}

func TestSQL(t *testing.T) {
	if got := (Params{}).SQL(); got != "OFFSET 0" {
		t.Errorf("expected OFFSET 0, got %q", got)
	}
	if got := (Params{Limit: 10, Offset: 20}).SQL(); got != "LIMIT 10 OFFSET 20" {
		t.Errorf("expected LIMIT 10 OFFSET 20, got %q", got)
	}
}

func TestHasNext(t *testing.T) {
	p := Params{Limit: 10, Offset: 0}
	if !p.HasNext(11) {
		t.Error("expected next page when total exceeds page")
	}
	if p.HasNext(10) {
		t.Error("expected no next page at exact boundary")
	}
	if (Params{}).HasNext(1000) {
		t.Error("unbounded params never have a next page")
	}
}

func TestNewResponse_Unbounded(t *testing.T) {
	b, err := json.Marshal(NewResponse([]string{"a"}, 1, Params{}))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"data":["a"]}` {
		t.Errorf("expected bare data envelope, got %s", b)
	}
}

func TestNewResponse_Bounded(t *testing.T) {
	r := NewResponse([]string{"a", "b"}, 5, Params{Limit: 2, Offset: 2})
	if r.Total == nil || *r.Total != 5 {
		t.Errorf("expected total 5, got %v", r.Total)
	}
	if !r.HasMore {
		t.Error("expected has_more")
	}
}
