package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// Defaults applied before CLI flags override them.
const (
	DefaultTimeoutSeconds = 10
	DefaultRetries        = 2
	DefaultFormat         = "text"
	DefaultUserAgent      = "preflight-check/1.0"
)

// proxyPattern accepts exactly scheme://host:port with an optional trailing
// slash. Anything fancier (paths, missing port) is rejected up front.
var proxyPattern = regexp.MustCompile(`^https?://[^/]+:[0-9]+/?$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("proxyurl", func(fl validator.FieldLevel) bool {
		return proxyPattern.MatchString(fl.Field().String())
	})
}

// Config is the run configuration: built once from defaults plus CLI flags,
// validated, then read-only for the rest of the run.
type Config struct {
	TimeoutSeconds int    `validate:"gt=0"`
	Retries        int    `validate:"gte=1"`
	Parallel       bool
	Format         string `validate:"oneof=text json csv"`
	LogFile        string
	UserAgent      string `validate:"required"`
	Verbose        bool
	ProxyURL       string `validate:"omitempty,proxyurl"`
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		TimeoutSeconds: DefaultTimeoutSeconds,
		Retries:        DefaultRetries,
		Format:         DefaultFormat,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks the configuration and returns one error per bad field,
// joined together, with messages a CLI user can act on.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var out error
	for _, fe := range verrs {
		switch fe.Field() {
		case "TimeoutSeconds":
			out = multierr.Append(out, fmt.Errorf("timeout must be a positive number of seconds, got %v", fe.Value()))
		case "Retries":
			out = multierr.Append(out, fmt.Errorf("retries must be at least 1, got %v", fe.Value()))
		case "Format":
			out = multierr.Append(out, fmt.Errorf("format must be one of text, json, csv, got %q", fe.Value()))
		case "UserAgent":
			out = multierr.Append(out, errors.New("user agent must not be empty"))
		case "ProxyURL":
			out = multierr.Append(out, fmt.Errorf("proxy must look like http://host:port or https://host:port, got %q", fe.Value()))
		default:
			out = multierr.Append(out, fmt.Errorf("invalid %s: %v", fe.Field(), fe.Value()))
		}
	}
	return out
}

// Timeout is TimeoutSeconds as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExportProxyEnv mirrors the proxy URL into http_proxy/https_proxy so
// subprocesses and ambient-proxy code see the same setting the transport
// uses. No-op without a proxy.
func (c Config) ExportProxyEnv() {
	if c.ProxyURL == "" {
		return
	}
	os.Setenv("http_proxy", c.ProxyURL)
	os.Setenv("https_proxy", c.ProxyURL)
}
