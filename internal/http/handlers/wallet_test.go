package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/wallet/transactions?"+rawQuery, nil)
	return c
}

func TestParseTransactionQueryDefaults(t *testing.T) {
	q, err := parseTransactionQuery(queryContext(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("defaults = page %d limit %d, want 1/10", q.Page, q.Limit)
	}
	if q.Type != "" || q.Source != "" {
		t.Fatalf("filters should be empty by default, got %+v", q)
	}
}

func TestParseTransactionQueryValid(t *testing.T) {
	q, err := parseTransactionQuery(queryContext(t, "page=3&limit=25&type=CREDIT&source=REFERRAL"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Page != 3 || q.Limit != 25 || q.Type != "CREDIT" || q.Source != "REFERRAL" {
		t.Fatalf("parsed query = %+v", q)
	}
}

func TestParseTransactionQueryRejections(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"zero page", "page=0"},
		{"negative page", "page=-2"},
		{"non-numeric page", "page=abc"},
		{"zero limit", "limit=0"},
		{"limit over cap", "limit=101"},
		{"unknown type", "type=TRANSFER"},
		{"lowercase type", "type=credit"},
		{"unknown source", "source=LOTTERY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseTransactionQuery(queryContext(t, tc.query)); err == nil {
				t.Fatalf("query %q should be rejected", tc.query)
			}
		})
	}
}
