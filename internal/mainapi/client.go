// Package mainapi is a small HTTP client for the main business API, which
// owns user accounts and verifies dashboard credentials.
package mainapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const verifyCredentialsPath = "/verify-credentials"

// VerifyResponse is the main API's answer to a credential check.
type VerifyResponse struct {
	Access   bool   `json:"access"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyCredentials asks the main API whether the username/password pair is
// valid. The API expects an urlencoded form and answers with a JSON body
// carrying an "access" flag.
func (c *Client) VerifyCredentials(ctx context.Context, username, password string) (*VerifyResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyCredentialsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("mainapi: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mainapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mainapi: unexpected status %d from %s", resp.StatusCode, verifyCredentialsPath)
	}

	var vr VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("mainapi: failed to decode response: %w", err)
	}
	return &vr, nil
}
