package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"

	"sokoni/pkg/errors"
)

type AuthClient struct {
	client *auth.Client
	apiKey string
}

func NewAuthClient(client *auth.Client, apiKey string) *AuthClient {
	return &AuthClient{
		client: client,
		apiKey: apiKey,
	}
}

func (c *AuthClient) VerifyToken(ctx context.Context, token string) (*auth.Token, error) {
	decodedToken, err := c.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	return decodedToken, nil
}

func (c *AuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	userRecord, err := c.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", errors.Conflict("Email already registered", err)
		}
		return "", errors.Internal("Failed to create user", err)
	}
	return userRecord.UID, nil
}

func (c *AuthClient) DeleteUser(ctx context.Context, uid string) error {
	if err := c.client.DeleteUser(ctx, uid); err != nil {
		return errors.Internal("Failed to delete auth user", err)
	}
	return nil
}

func (c *AuthClient) RevokeTokens(ctx context.Context, uid string) error {
	if err := c.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke tokens", err)
	}
	return nil
}

type SignInResult struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

// SignInWithEmailPassword exchanges credentials for an ID token through
// the Identity Toolkit REST API; the Admin SDK has no password sign-in.
func (c *AuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", c.apiKey)

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, errors.Internal("Failed to encode sign-in request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: 10 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Internal("Sign-in request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	var result SignInResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Internal("Failed to decode sign-in response", err)
	}
	return &result, nil
}
