package bootstrap

import (
	"time"

	"martcore/internal/pkg/config"
	"martcore/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		NewTokenDuration,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, NewTokenDuration(cfg))
}

func NewTokenDuration(cfg config.Config) time.Duration {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}
	return duration
}
