package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go-blog-client/internal/model"
	"go-blog-client/pkg/apierror"
)

// Login exchanges credentials for a token pair and stores the session.
// It deliberately bypasses Do: there is no bearer token to attach and no
// refresh to attempt on a login failure.
func (e *Executor) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	var resp model.LoginResponse
	err := e.postPlain(ctx, "/api/auth/login", model.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return model.LoginResponse{}, err
	}

	if err := e.store.Login(resp.Token, resp.RefreshToken, resp.Username, resp.Role); err != nil {
		return model.LoginResponse{}, err
	}

	return resp, nil
}

// Register creates a new account. It does not log the user in; the backend
// expects an explicit login afterwards.
func (e *Executor) Register(ctx context.Context, req model.RegisterRequest) error {
	return e.postPlain(ctx, "/api/auth/register", req, nil)
}

// Logout clears the local session. The backend holds no server-side session
// state for this client, so no network call is involved.
func (e *Executor) Logout() {
	e.store.Logout()
}

// postPlain performs an unauthenticated JSON POST outside the executor's
// refresh-and-retry path.
func (e *Executor) postPlain(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(payload))
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

	return decodeBody(resp.StatusCode, respBody, out)
}
