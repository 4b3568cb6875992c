package launcher

import (
	"fmt"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// makeLogger builds the process logger from the logging config: level
// from the numeric verbosity, text or JSON output, and an optional
// Sentry hook that forwards error-and-above entries when a DSN is
// configured.
func makeLogger(cfg LoggingConfig) (*logrus.Logger, error) {
	log := logrus.New()

	if cfg.Verbosity < 0 || cfg.Verbosity > int(logrus.TraceLevel) {
		return nil, fmt.Errorf("log verbosity out of range: %d", cfg.Verbosity)
	}
	log.SetLevel(logrus.Level(cfg.Verbosity))

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q (valid: text, json)", cfg.Format)
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry hook: %w", err)
		}
		hook.StacktraceConfiguration.Enable = true
		log.AddHook(hook)
	}
	return log, nil
}
