// Package observability bundles metrics and error tracking for the report
// service.
package observability

import (
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig carries the optional error-tracking settings.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	ServerName  string
}

// InitSentry initialises error tracking. A blank DSN disables it, which is
// the normal state for local development.
func InitSentry(cfg SentryConfig, logger *log.Logger) error {
	if cfg.DSN == "" {
		if logger != nil {
			logger.Printf("sentry DSN not configured, error tracking disabled")
		}
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		ServerName:  cfg.ServerName,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Request != nil && event.Request.Headers != nil {
				delete(event.Request.Headers, "Authorization")
				delete(event.Request.Headers, "Cookie")
			}
			return event
		},
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// CaptureError reports an error with contextual tags. Safe to call when
// sentry is disabled.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// FlushSentry drains pending events on shutdown.
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}
