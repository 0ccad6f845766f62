package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ProviderClient asks the identity provider whether a session token is live.
type ProviderClient struct {
	HTTP      *http.Client
	BaseURL   string
	SecretKey string
}

func NewProviderClient(baseURL, secretKey string) *ProviderClient {
	return &ProviderClient{
		HTTP:      &http.Client{Timeout: 5 * time.Second},
		BaseURL:   baseURL,
		SecretKey: secretKey,
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Metadata  struct {
		Role string `json:"role"`
	} `json:"public_metadata"`
}

func (p *ProviderClient) Verify(ctx context.Context, token string) (*Principal, error) {
	body, _ := json.Marshal(verifyRequest{Token: token})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/sessions/verify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	res, err := p.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return nil, ErrInvalidSession
	default:
		return nil, fmt.Errorf("auth provider: unexpected status %s", res.Status)
	}

	var out verifyResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("auth provider: decode: %w", err)
	}
	if out.UserID == "" {
		return nil, ErrInvalidSession
	}
	return &Principal{UserID: out.UserID, SessionID: out.SessionID, Role: out.Metadata.Role}, nil
}
