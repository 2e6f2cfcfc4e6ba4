package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

type stubOrderService struct {
	updateFn func(ctx context.Context, session ports.SessionHandle, orderID, status string) error
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, session ports.SessionHandle, orderID, status string) error {
	return s.updateFn(ctx, session, orderID, status)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	svc := &stubOrderService{updateFn: func(_ context.Context, session ports.SessionHandle, orderID, status string) error {
		if session.Token() != "t1" || orderID != "o1" || status != "READY" {
			t.Fatalf("unexpected args: %s %s %s", session.Token(), orderID, status)
		}
		return nil
	}}
	c, rec, _ := newContext(t, jsonRequest(http.MethodPatch, "/orders/o1/status", `{"status":"READY"}`), nil, vendorSlots())
	c.SetParamNames("id")
	c.SetParamValues("o1")

	if err := NewOrderHandler(svc).UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_MissingStatus(t *testing.T) {
	c, _, _ := newContext(t, jsonRequest(http.MethodPatch, "/orders/o1/status", `{}`), nil, vendorSlots())

	err := NewOrderHandler(&stubOrderService{}).UpdateStatus(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOrderHandler_UpdateStatus_PropagatesServiceError(t *testing.T) {
	svc := &stubOrderService{updateFn: func(context.Context, ports.SessionHandle, string, string) error {
		return domain.ErrInvalidStatus
	}}
	c, _, _ := newContext(t, jsonRequest(http.MethodPatch, "/orders/o1/status", `{"status":"COOKED"}`), nil, vendorSlots())

	if err := NewOrderHandler(svc).UpdateStatus(c); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
