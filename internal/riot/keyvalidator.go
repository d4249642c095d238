package riot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const (
	statusEndpoint = "/tft/status/v1/platform-data"

	defaultValidationTimeout = 10 * time.Second
)

// KeyValidator checks an API key against a platform's TFT status endpoint
type KeyValidator struct {
	httpClient *http.Client
	baseURL    string
}

// KeyValidatorOption configures a KeyValidator
type KeyValidatorOption func(*KeyValidator)

// WithValidatorBaseURL points the validator at another host
func WithValidatorBaseURL(url string) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.baseURL = url
	}
}

// WithValidatorTimeout bounds the status request
func WithValidatorTimeout(timeout time.Duration) KeyValidatorOption {
	return func(v *KeyValidator) {
		v.httpClient.Timeout = timeout
	}
}

// NewKeyValidator creates a KeyValidator for platform
func NewKeyValidator(platform Platform, opts ...KeyValidatorOption) *KeyValidator {
	v := &KeyValidator{
		httpClient: &http.Client{Timeout: defaultValidationTimeout},
		baseURL:    platformBaseURL(platform),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateKey fetches the platform status with apiKey. A rejected key yields an
// *APIError matching ErrKeyRejected; any other non-200 is an *APIError too,
// meaning the key's validity is unknown.
func (v *KeyValidator) ValidateKey(ctx context.Context, apiKey string) (*PlatformStatus, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: empty key", ErrKeyRejected)
	}

	u := v.baseURL + statusEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}
	var status PlatformStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &status, nil
}

// IsKeyRejected reports whether err means Riot refused the key itself
func IsKeyRejected(err error) bool {
	return errors.Is(err, ErrKeyRejected)
}
