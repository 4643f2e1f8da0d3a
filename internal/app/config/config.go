package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr      string `envconfig:"COTIZADOR_HTTP_ADDR" default:":8080"`
	DatabaseURL   string `envconfig:"COTIZADOR_DATABASE_URL" required:"true"`
	InternalToken string `envconfig:"COTIZADOR_INTERNAL_TOKEN" required:"true"`
	LogLevel      string `envconfig:"COTIZADOR_LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"COTIZADOR_LOG_FORMAT" default:"json"`

	Brand BrandConfig
}

// BrandConfig is the issuer identity printed on every document header.
// Requests may override it per quote.
type BrandConfig struct {
	Name     string `envconfig:"COTIZADOR_BRAND_NAME" default:"HIDRACODE SOLUTIONS"`
	Email    string `envconfig:"COTIZADOR_BRAND_EMAIL" default:"contacto.hidracode@gmail.com"`
	Phone    string `envconfig:"COTIZADOR_BRAND_PHONE" default:"+56 9 4075 2095"`
	LogoPath string `envconfig:"COTIZADOR_BRAND_LOGO"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
