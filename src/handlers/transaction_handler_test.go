package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func userRequest(method, target, body, userID string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", userID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParseTransactionFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/1/transactions?period_month=5&period_year=2024&space_id=11&group_name=fo", nil)
	filter, err := parseTransactionFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.PeriodMonth == nil || *filter.PeriodMonth != 5 {
		t.Errorf("expected period_month 5, got %v", filter.PeriodMonth)
	}
	if filter.PeriodYear == nil || *filter.PeriodYear != 2024 {
		t.Errorf("expected period_year 2024, got %v", filter.PeriodYear)
	}
	if filter.SpaceID == nil || *filter.SpaceID != 11 {
		t.Errorf("expected space_id 11, got %v", filter.SpaceID)
	}
	if filter.GroupNamePrefix != "fo" {
		t.Errorf("expected group_name prefix fo, got %q", filter.GroupNamePrefix)
	}
}

func TestParseTransactionFilterEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/1/transactions", nil)
	filter, err := parseTransactionFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.PeriodMonth != nil || filter.PeriodYear != nil || filter.SpaceID != nil || filter.GroupNamePrefix != "" {
		t.Errorf("expected empty filter, got %+v", filter)
	}
}

func TestParseTransactionFilterRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/1/transactions?period_month=five", nil)
	if _, err := parseTransactionFilter(req); err == nil {
		t.Fatal("expected error for non-numeric period_month")
	}
}

// Validation runs before any database access, so a nil pool is safe here.
func TestCreateTransactionRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"type_transaction":`},
		{"unknown type", `{"type_transaction":"transfer","group_name":"food","value_transaction":25}`},
		{"empty group", `{"type_transaction":"expense","group_name":"","value_transaction":25}`},
		{"zero value", `{"type_transaction":"expense","group_name":"food","value_transaction":0}`},
		{"negative value", `{"type_transaction":"expense","group_name":"food","value_transaction":-5}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := userRequest(http.MethodPost, "/users/1/transactions", c.body, "1")
			CreateTransaction(nil).ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestCreateTransactionRejectsBadUserID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := userRequest(http.MethodPost, "/users/abc/transactions", `{}`, "abc")
	CreateTransaction(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetTransactionRejectsBadTransactionID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := userRequest(http.MethodGet, "/users/1/transactions/abc", "", "1")
	rctx := chi.RouteContext(req.Context())
	rctx.URLParams.Add("transaction_id", "abc")
	GetTransactionByID(nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
