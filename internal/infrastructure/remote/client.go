// Package remote talks to the event/ordering REST API that owns all
// persistent business state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Config captures the settings for reaching the REST API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements the auth, order and table collaborators over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient validates cfg and returns a Client. A default timeout is
// applied when none is provided.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote: base url %q must be absolute", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	Payload     *remoteProfile `json:"payload"`
}

type remoteProfile struct {
	ID    apiID  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login exchanges credentials for an access token and profile. Every
// failure, transport errors included, is returned as *domain.AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) {
			return "", nil, &domain.AuthError{Message: re.Message, Err: re}
		}
		return "", nil, &domain.AuthError{Err: err}
	}
	if resp.AccessToken == "" {
		return "", nil, &domain.AuthError{Message: "login response carried no access token"}
	}
	return resp.AccessToken, c.toProfile(resp.Payload), nil
}

// toProfile normalizes the remote role; unknown roles become RoleNone.
func (c *Client) toProfile(p *remoteProfile) *domain.Profile {
	if p == nil {
		return nil
	}
	role, err := domain.ParseRole(p.Role)
	if err != nil && p.Role != "" {
		c.log.Warn().Str("role", p.Role).Str("user_id", string(p.ID)).Msg("unknown role from auth api, dropping it")
	}
	return &domain.Profile{
		ID:    string(p.ID),
		Name:  p.Name,
		Email: p.Email,
		Role:  role,
	}
}

type orderResponse struct {
	ID     apiID  `json:"id"`
	Status string `json:"status"`
}

// SubmitOrder places an order.
func (c *Client) SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderConfirmation, error) {
	var resp orderResponse
	if err := c.do(ctx, "submit_order", http.MethodPost, "/orders", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("submit order: response carried no order id")
	}
	return &domain.OrderConfirmation{
		ID:     string(resp.ID),
		Status: domain.OrderStatus(strings.ToUpper(resp.Status)),
	}, nil
}

type tableResponse struct {
	ID     apiID `json:"id"`
	Number int   `json:"number"`
}

// ResolveTable looks up the table printed as tableNumber on an event's QR code.
func (c *Client) ResolveTable(ctx context.Context, eventID, tableNumber string) (*domain.Table, error) {
	p := "/events/" + url.PathEscape(eventID) + "/number/" + url.PathEscape(tableNumber)
	var resp tableResponse
	if err := c.do(ctx, "resolve_table", http.MethodGet, p, "", nil, &resp); err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) && re.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: event %s table %s", domain.ErrTableNotFound, eventID, tableNumber)
		}
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: event %s table %s", domain.ErrTableNotFound, eventID, tableNumber)
	}
	return &domain.Table{ID: string(resp.ID), Number: resp.Number}, nil
}

// UpdateOrderStatus sets an order's status using the caller's token.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	err := c.do(ctx, "update_order_status", http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/status", token, body, nil)
	var re *domain.RemoteError
	if errors.As(err, &re) && re.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("update order status: %w", domain.ErrUnauthorized)
	}
	return err
}

// do sends one JSON request. Non-2xx answers come back as *domain.RemoteError.
func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.RemoteRequestDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("operation", op).Msg("remote api call failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := &domain.RemoteError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.log.Warn().
			Str("operation", op).
			Int("http_status", resp.StatusCode).
			Str("message", re.Message).
			Msg("remote api returned error status")
		return re
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// readErrorMessage extracts the human-readable message of an error body.
// The API sends either {"message": "..."} or {"message": ["...", "..."]}.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return strings.TrimSpace(string(raw))
	}
	var msg string
	if err := json.Unmarshal(envelope.Message, &msg); err == nil && msg != "" {
		return msg
	}
	var msgs []string
	if err := json.Unmarshal(envelope.Message, &msgs); err == nil && len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return envelope.Error
}

// apiID accepts identifiers sent as JSON strings or numbers.
type apiID string

func (id *apiID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = apiID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = apiID(n.String())
	return nil
}
