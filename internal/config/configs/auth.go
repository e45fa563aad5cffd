package configs

import "time"

// Auth configures access token issuance. Secret signs HS256 tokens and
// must be overridden outside local development. TokenTTL bounds token
// lifetime.
type Auth struct {
	Secret   string        `env:"SECRET" envDefault:"coldreach-dev-secret"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}
