package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"option-set-api/internal/middleware"
)

// TokenValidationRequest is the request body for token validation
type TokenValidationRequest struct {
	Token string `json:"token"`
}

// TokenValidationResponse is the auth-service validation response
type TokenValidationResponse struct {
	Valid     bool   `json:"valid"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CanManage bool   `json:"canManage"`
}

// AuthClient validates tokens against the auth-service. Validation through
// the service catches blacklisted tokens that local parsing would accept.
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAuthClient creates a new AuthClient
func NewAuthClient(baseURL string, timeout time.Duration, logger *zap.Logger) *AuthClient {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &AuthClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ValidateToken validates a token via the auth-service and returns the
// authenticated principal
func (c *AuthClient) ValidateToken(ctx context.Context, tokenStr string) (*middleware.Principal, error) {
	url := fmt.Sprintf("%s/api/auth/validate", c.baseURL)

	reqBody := TokenValidationRequest{Token: tokenStr}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to validate token", zap.Error(err))
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token validation failed with status: %d", resp.StatusCode)
	}

	var tokenResp TokenValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !tokenResp.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	userID, err := uuid.Parse(tokenResp.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in response: %w", err)
	}

	return &middleware.Principal{
		UserID:    userID,
		Name:      tokenResp.Name,
		Email:     tokenResp.Email,
		CanManage: tokenResp.CanManage,
	}, nil
}
