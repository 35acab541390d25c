package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"go-blog-client/internal/model"
	"go-blog-client/internal/session"
	"go-blog-client/pkg/apierror"
)

// Executor performs API calls with the current credentials, recovering
// exactly once from an expired access token via the refresh endpoint. It
// owns the Authorization header; callers must not attach one themselves.
type Executor struct {
	baseURL string
	hc      *http.Client
	store   *session.Store
	log     *slog.Logger
}

func NewExecutor(baseURL string, store *session.Store, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}

	return &Executor{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		store:   store,
		log:     log,
	}
}

// Session exposes the executor's session store.
func (e *Executor) Session() *session.Store {
	return e.store
}

// outcome classifies a single attempt. Modeling the 401 case explicitly
// keeps the recovery a bounded loop instead of nested error handling.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeAuthExpired
	outcomeFailed
)

// Do performs one API call. body is marshaled as JSON when non-nil; a 2xx
// JSON response is decoded into out when out is non-nil. On a 401 with a
// refresh token available it refreshes once and retries once; a second 401
// is terminal. All other failures surface without retry.
func (e *Executor) Do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	res, err := e.attempt(ctx, method, path, payload, out)
	if res != outcomeAuthExpired {
		return err
	}

	refreshToken := e.store.RefreshToken()
	if refreshToken == "" {
		return err
	}

	if refreshErr := e.refresh(ctx, refreshToken); refreshErr != nil {
		e.log.Debug("token refresh failed", "error", refreshErr)
		e.store.Logout()
		return err
	}

	e.log.Debug("token refreshed, retrying", "method", method, "path", path)

	// One retry only. If the retry comes back 401 again the error is
	// returned as-is; there is no second refresh.
	_, retryErr := e.attempt(ctx, method, path, payload, out)
	return retryErr
}

func (e *Executor) attempt(ctx context.Context, method, path string, payload []byte, out any) (outcome, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, bodyReader)
	if err != nil {
		return outcomeFailed, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	if accessToken := e.store.AccessToken(); accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := e.hc.Do(req)
	if err != nil {
		// Transport failures propagate as-is and are never retried.
		return outcomeFailed, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, err
	}

	e.log.Debug("api call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		return outcomeAuthExpired, apierror.FromResponse(resp.StatusCode, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return outcomeFailed, apierror.FromResponse(resp.StatusCode, respBody)
	}

	return outcomeOK, decodeBody(resp.StatusCode, respBody, out)
}

// decodeBody fills out from a success response. 204s and empty bodies
// resolve to an empty result instead of a decode error.
func decodeBody(status int, body []byte, out any) error {
	if out == nil || status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	return json.Unmarshal(body, out)
}

// refresh exchanges the refresh token for a new pair and stores it. The
// refresh response carries no role; the store re-derives it from the new
// access token or keeps the persisted one.
func (e *Executor) refresh(ctx context.Context, refreshToken string) error {
	payload, err := json.Marshal(model.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.FromResponse(resp.StatusCode, respBody)
	}

	var refreshed model.RefreshResponse
	if err := json.Unmarshal(respBody, &refreshed); err != nil {
		return err
	}

	return e.store.Login(refreshed.AccessToken, refreshed.RefreshToken, refreshed.Username, "")
}
