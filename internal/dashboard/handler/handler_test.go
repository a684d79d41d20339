package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"opsboard_backend/platform/apperr"
	"opsboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/dashboard?"+rawQuery, nil)
	return c
}

func TestParseQueryDefaults(t *testing.T) {
	h := New(nil, validator.New(), nil)

	at, bypass, err := h.parseQuery(queryContext(t, ""))
	if err != nil {
		t.Fatalf("empty query must parse: %v", err)
	}
	if at != nil || bypass {
		t.Fatalf("expected no instant and no bypass, got at=%v bypass=%v", at, bypass)
	}
}

func TestParseQueryReadsInstantAndRefresh(t *testing.T) {
	h := New(nil, validator.New(), nil)

	at, bypass, err := h.parseQuery(queryContext(t, "at=2025-03-19T15:00:00Z&refresh=true"))
	if err != nil {
		t.Fatalf("valid query must parse: %v", err)
	}
	if !bypass {
		t.Fatal("refresh=true must set the cache bypass")
	}
	want := time.Date(2025, 3, 19, 15, 0, 0, 0, time.UTC)
	if at == nil || !at.Equal(want) {
		t.Fatalf("expected %v, got %v", want, at)
	}
}

func TestParseQueryRejectsBadInstant(t *testing.T) {
	h := New(nil, validator.New(), nil)

	_, _, err := h.parseQuery(queryContext(t, "at=yesterday"))
	if err == nil {
		t.Fatal("expected a validation error for a non-RFC3339 instant")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation kind, got %v", err)
	}
}
