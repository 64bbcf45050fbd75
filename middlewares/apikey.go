package middlewares

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/pkg/apikey"
)

// Authenticator checks a presented credential.
// *apikey.Gate satisfies it.
type Authenticator interface {
	Authenticate(credential string) error
}

// apiKeyContextKey stores the redacted key of an authenticated request.
type apiKeyContextKey struct{}

// DefaultAPIKeyExtractor reads the key from X-API-Key, then an
// Authorization Bearer token, then the apiKey query parameter.
func DefaultAPIKeyExtractor() internal.Extractor {
	return internal.NewExtractor(
		internal.FromHeader("X-API-Key"),
		internal.FromBearerToken(),
		internal.FromQuery("apiKey"),
	)
}

// APIKeyOption configures the API key middleware.
type APIKeyOption func(*apiKeyConfig)

type apiKeyConfig struct {
	extractor internal.Extractor
}

// WithAPIKeyExtractor replaces DefaultAPIKeyExtractor.
func WithAPIKeyExtractor(ex internal.Extractor) APIKeyOption {
	return func(cfg *apiKeyConfig) {
		cfg.extractor = ex
	}
}

// apiKeyFailure is the 401 body. It is written directly so the handler
// chain never runs for unauthenticated requests.
type apiKeyFailure struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// APIKey returns middleware that admits only requests carrying a key the
// authenticator accepts. Rejections answer 401 with
// {"success": false, "message": ...} and log a warning; accepted requests
// are logged at info. Keys are logged redacted.
func APIKey(auth Authenticator, opts ...APIKeyOption) internal.Middleware {
	cfg := &apiKeyConfig{extractor: DefaultAPIKeyExtractor()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key, _ := cfg.extractor.Extract(c)
			attrs := []any{
				"api_key", apikey.Redact(key),
				"ip", c.RealIP(),
				"path", c.Request().URL.Path,
				"user_agent", c.Header("User-Agent"),
			}

			if err := auth.Authenticate(key); err != nil {
				c.LogWarn("api key rejected", append(attrs, "reason", err.Error())...)
				return c.JSON(http.StatusUnauthorized, apiKeyFailure{Message: failureMessage(err)})
			}

			c.LogInfo("api key accepted", attrs...)
			c.Set(apiKeyContextKey{}, apikey.Redact(key))
			return next(c)
		}
	}
}

// GetAPIKey returns the redacted key of an authenticated request, or "".
func GetAPIKey(c internal.Context) string {
	if v, ok := c.Get(apiKeyContextKey{}).(string); ok {
		return v
	}
	return ""
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, apikey.ErrCredentialRequired):
		return apikey.ErrCredentialRequired.Error()
	case errors.Is(err, apikey.ErrInvalidCredential):
		return apikey.ErrInvalidCredential.Error()
	default:
		return "Unauthorized"
	}
}
