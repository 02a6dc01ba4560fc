package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/session"
)

// maxResponseBytes bounds exchange reply bodies. A legitimate reply is a few
// hundred bytes.
const maxResponseBytes = 1 << 20

// Client is an HTTP [Exchanger] that POSTs JSON to a remote credential
// endpoint.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	http         *http.Client
	baseURL      string
	loginPath    string
	registerPath string
}

// NewClient creates an HTTP [Exchanger]. httpClient may be nil, in which
// case [http.DefaultClient] is used; per-attempt deadlines are expected to
// arrive via ctx rather than the client's Timeout.
func NewClient(httpClient *http.Client, baseURL, loginPath, registerPath string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:         httpClient,
		baseURL:      baseURL,
		loginPath:    loginPath,
		registerPath: registerPath,
	}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type exchangeResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

// Login exchanges an identifier and password for a verified identity.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, identifier, password string) (Result, error) {
	return c.post(ctx, c.loginPath, loginRequest{Identifier: identifier, Password: password})
}

// Register submits a new account profile and returns the resulting identity.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Register(ctx context.Context, profile Profile) (Result, error) {
	return c.post(ctx, c.registerPath, registerRequest{
		Username: profile.Username,
		Email:    profile.Email,
		Password: profile.Password,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Deadline and cancellation pass through unwrapped so the caller
		// can classify timeouts.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return Result{}, ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return Result{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var reply exchangeResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	if reply.Token == "" {
		return Result{}, fmt.Errorf("%w: missing token", ErrProtocol)
	}
	if reply.User.ID == "" {
		return Result{}, fmt.Errorf("%w: missing user id", ErrProtocol)
	}
	role := permission.Role(reply.User.Role)
	if !role.Valid() {
		return Result{}, fmt.Errorf("%w: unknown role %q", ErrProtocol, reply.User.Role)
	}

	return Result{
		Token: reply.Token,
		Identity: session.Identity{
			ID:       reply.User.ID,
			Email:    reply.User.Email,
			Username: reply.User.Username,
		},
		Role: role,
	}, nil
}
