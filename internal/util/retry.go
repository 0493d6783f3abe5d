package util

import (
	"context"
	"time"
)

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 5 * time.Second
)

// RetryBackoff calcula la espera para el intento n: min(2^n × 500ms, 5s).
func RetryBackoff(attempt int) time.Duration {
	delay := retryBaseDelay << uint(attempt)
	if delay > retryMaxDelay || delay <= 0 {
		return retryMaxDelay
	}
	return delay
}

// WithRetry ejecuta fn hasta maxAttempts veces con backoff exponencial acotado.
// Respeta la cancelación del contexto entre intentos.
func WithRetry(ctx context.Context, maxAttempts int, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryBackoff(attempt)):
		}
	}
	return err
}
