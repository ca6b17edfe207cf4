package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func newApp(h fiber.Handler) *fiber.App {
	logger := log.New(io.Discard, "", 0)
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(logger).Middleware())
	app.Use(NewErrorMiddleware(logger).Middleware())
	app.Get("/", h)
	return app
}

func call(t *testing.T, app *fiber.App) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestErrorMiddleware_ClientErrorKeepsMessage(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "invalid size", nil, errors.New("size=0"))
	})
	resp, body := call(t, app)
	if resp.StatusCode != 400 || body["message"] != "invalid size" {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestErrorMiddleware_ServerErrorIsMasked(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		return errors.New("pq: password authentication failed")
	})
	resp, body := call(t, app)
	if resp.StatusCode != 500 || body["message"] != "internal server error" {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, body)
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		panic("boom")
	})
	resp, body := call(t, app)
	if resp.StatusCode != 500 || body["message"] != "internal server error" {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, body)
	}
}
