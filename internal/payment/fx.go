package payment

import (
	"time"

	"go.uber.org/fx"

	"github.com/hamzazerouala/windevexpert/internal/config"
	"github.com/hamzazerouala/windevexpert/internal/payment/service"
	"github.com/hamzazerouala/windevexpert/internal/payment/signature"
)

var Module = fx.Module("payment.service",
	fx.Provide(newVerifier),
	fx.Provide(service.NewService),
)

func newVerifier(cfg config.Config) *signature.Verifier {
	tolerance := time.Duration(cfg.WebhookToleranceSeconds) * time.Second
	return signature.New(cfg.StripeWebhookSecret, tolerance)
}
