package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	WhatsappConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetAPIURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
}

type WhatsappConfig interface {
	GetPollInterval() time.Duration
	GetStatusTimeout() time.Duration
	GetRecoveryDelay() time.Duration
	GetSendDelay() time.Duration
}

type SecurityConfig interface {
	GetJWTSecret() string
	GetTokenExpiry() time.Duration
}

type mainConfig struct {
	EnvVars
	Cors
	Whatsapp
	Security
}

// New loads the configuration from the environment. A .env file in the
// working directory is loaded first if present.
func New() (Config, error) {
	c := mainConfig{}
	if err := parseEnv(&c.EnvVars, &c.Cors, &c.Whatsapp, &c.Security); err != nil {
		return nil, err
	}
	return c, nil
}
