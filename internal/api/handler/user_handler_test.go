package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPageParams_PassesRawValuesThrough(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"absent", "", 0, 0},
		{"unparsable", "page=abc&limit=xyz", 0, 0},
		{"negative", "page=-3&limit=-1", -3, -1},
		{"valid", "page=2&limit=25", 2, 25},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())

			page, limit := pageParams(c)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("got (%d, %d), want (%d, %d)", page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}
