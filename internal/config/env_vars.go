package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// EnvVars holds the base process configuration parsed from the environment.
type EnvVars struct {
	Port       string `env:"PORT" envDefault:"3000"`
	AppName    string `env:"APP_NAME" envDefault:"NTMSG API"`
	Env        string `env:"ENV" envDefault:"DEV"`
	DataFolder string `env:"FOLDER" envDefault:"./data"`
	APIURL     string `env:"API_URL" envDefault:""`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetDataFolder() string {
	return e.DataFolder
}

// GetAPIURL returns the base URL of the main business API used for
// credential verification (e.g. "https://api.example.com").
func (e EnvVars) GetAPIURL() string {
	return e.APIURL
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// Whatsapp holds timing knobs for the session lifecycle manager.
type Whatsapp struct {
	PollInterval  time.Duration `env:"STATUS_POLL_INTERVAL" envDefault:"500ms"`
	StatusTimeout time.Duration `env:"STATUS_TIMEOUT" envDefault:"30s"`
	RecoveryDelay time.Duration `env:"RECOVERY_DELAY" envDefault:"2s"`
	SendDelay     time.Duration `env:"SEND_DELAY" envDefault:"0s"`
}

var _ WhatsappConfig = Whatsapp{}

func (w Whatsapp) GetPollInterval() time.Duration {
	return w.PollInterval
}

func (w Whatsapp) GetStatusTimeout() time.Duration {
	return w.StatusTimeout
}

func (w Whatsapp) GetRecoveryDelay() time.Duration {
	return w.RecoveryDelay
}

func (w Whatsapp) GetSendDelay() time.Duration {
	return w.SendDelay
}

// Security holds the JWT signing configuration.
type Security struct {
	JWTSecret   string        `env:"JWT_SECRET" envDefault:""`
	TokenExpiry time.Duration `env:"TOKEN_EXPIRY" envDefault:"1h"`
}

var _ SecurityConfig = Security{}

func (s Security) GetJWTSecret() string {
	return s.JWTSecret
}

func (s Security) GetTokenExpiry() time.Duration {
	return s.TokenExpiry
}

// Cors holds the allowed origins for cross-origin API calls.
type Cors struct {
	Origins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

var _ CorsConfig = Cors{}

type AllowedOrigins []string

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	for _, o := range a {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return AllowedOrigins(c.Origins)
}

func parseEnv(targets ...interface{}) error {
	defaultEnvLoaded.Do(func() {
		// The .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	for _, t := range targets {
		if err := env.Parse(t); err != nil {
			return fmt.Errorf("config: failed to parse environment: %w", err)
		}
	}
	return nil
}
