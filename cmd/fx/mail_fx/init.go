package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fdweb/internal/config"
	"fdweb/internal/services"
)

var Module = fx.Provide(provideLeadNotifier)

func provideLeadNotifier(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) services.LeadNotifierInterface {
	if !cfg.Mail.Enabled {
		logger.Info("lead email notifications disabled")
		return services.NewNoopNotifier()
	}

	notifier := services.NewSMTPLeadNotifier(services.SMTPConfig{
		Host:       cfg.Mail.Host,
		Port:       cfg.Mail.Port,
		Username:   cfg.Mail.Username,
		Password:   cfg.Mail.Password,
		From:       cfg.Mail.From,
		FromName:   cfg.Mail.FromName,
		To:         cfg.Mail.To,
		UseSSL:     cfg.Mail.UseSSL,
		RequireTLS: cfg.Mail.RequireTLS,

		AppName: cfg.App.Name,
	}, logger)

	lc.Append(fx.StopHook(notifier.Close))
	logger.Info("lead email notifications enabled", zap.String("to", cfg.Mail.To))
	return notifier
}
