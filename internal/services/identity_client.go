package services

import (
	"fmt"
	"os"

	"earnings-service/pkg/common"
)

// IdentityClient talks to the external identity provider over HTTP. The
// provider owns credentials and sessions; this service only maps tokens to
// user ids and forwards registrations.
type IdentityClient struct {
	baseUrl string
}

// NewIdentityClient returns nil when no provider is configured, which callers
// treat as "trust the gateway-supplied user id".
func NewIdentityClient() *IdentityClient {
	baseUrl := os.Getenv("IDENTITY_SERVICE_URL")
	if baseUrl == "" {
		return nil
	}
	return &IdentityClient{baseUrl: baseUrl}
}

// Register forwards credentials to the provider.
func (c *IdentityClient) Register(email, password, displayName string) error {
	payload := map[string]string{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	}
	resp, err := common.Post(fmt.Sprintf("%s/accounts", c.baseUrl), payload, nil)
	if err != nil {
		return err
	}
	if m, ok := resp.(map[string]interface{}); ok {
		if success, ok := m["success"].(bool); ok && !success {
			return fmt.Errorf("identity provider rejected registration: %v", m["message"])
		}
	}
	return nil
}

// VerifyToken resolves a bearer token to the authenticated user's email. The
// caller maps the email to a local account.
func (c *IdentityClient) VerifyToken(token string) (string, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}
	resp, err := common.Get(fmt.Sprintf("%s/sessions/verify", c.baseUrl), headers)
	if err != nil {
		return "", err
	}

	m, ok := resp.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected identity response %T", resp)
	}
	if success, ok := m["success"].(bool); ok && !success {
		return "", fmt.Errorf("token rejected: %v", m["message"])
	}
	email, _ := m["email"].(string)
	if email == "" {
		return "", fmt.Errorf("identity response missing email")
	}
	return email, nil
}
