package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
)

func newExchangeServer(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := NewClient(srv.Client(), srv.URL, "/auth/login", "/auth/register")
	return client, srv.Close
}

func TestLoginSuccess(t *testing.T) {
	client, done := newExchangeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["identifier"] != "ana" || req["password"] != "secret1" {
			t.Errorf("unexpected payload %v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user": map[string]string{
				"id": "u-1", "email": "ana@legends.example", "username": "ana", "role": "bartender",
			},
		})
	})
	defer done()

	result, err := client.Login(context.Background(), "ana", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "tok-1" {
		t.Fatalf("unexpected token %q", result.Token)
	}
	if result.Identity.ID != "u-1" || result.Identity.Username != "ana" {
		t.Fatalf("unexpected identity %+v", result.Identity)
	}
	if result.Role != permission.RoleBartender {
		t.Fatalf("unexpected role %v", result.Role)
	}
}

func TestLoginRejection(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client, done := newExchangeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})

		_, err := client.Login(context.Background(), "ana", "wrong")
		done()
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("status %d: expected ErrInvalidCredentials, got %v", status, err)
		}
	}
}

func TestLoginBackendFailure(t *testing.T) {
	client, done := newExchangeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer done()

	_, err := client.Login(context.Background(), "ana", "secret1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLoginTimeoutPassesThroughDeadline(t *testing.T) {
	client, done := newExchangeServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	defer done()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Login(ctx, "ana", "secret1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestLoginProtocolViolations(t *testing.T) {
	cases := map[string]string{
		"unparseable body": `{not json`,
		"missing token":    `{"user":{"id":"u-1","role":"admin"}}`,
		"missing user id":  `{"token":"tok-1","user":{"role":"admin"}}`,
		"unknown role":     `{"token":"tok-1","user":{"id":"u-1","role":"sommelier"}}`,
	}

	for name, body := range cases {
		client, done := newExchangeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body))
		})

		_, err := client.Login(context.Background(), "ana", "secret1")
		done()
		if !errors.Is(err, ErrProtocol) {
			t.Fatalf("%s: expected ErrProtocol, got %v", name, err)
		}
	}
}

func TestRegisterSuccess(t *testing.T) {
	client, done := newExchangeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["username"] != "ana" || req["email"] != "ana@legends.example" {
			t.Errorf("unexpected payload %v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-2",
			"user": map[string]string{
				"id": "u-2", "email": "ana@legends.example", "username": "ana", "role": "client",
			},
		})
	})
	defer done()

	result, err := client.Register(context.Background(), Profile{
		Username: "ana",
		Email:    "ana@legends.example",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Role != permission.RoleClient {
		t.Fatalf("unexpected role %v", result.Role)
	}
}
