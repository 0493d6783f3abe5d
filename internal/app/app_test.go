package app

import (
	"context"
	"errors"
	"testing"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestShutdownHooksRunInRegistrationOrder(t *testing.T) {
	a := &App{}

	var order []string
	a.RegisterShutdownHook(func(ctx context.Context) error {
		order = append(order, "tracer")
		return nil
	})
	a.RegisterShutdownHook(func(ctx context.Context) error {
		order = append(order, "cache")
		return nil
	})

	a.runShutdownHooks(context.Background())

	assert.Equal(t, []string{"tracer", "cache"}, order)
}

func TestShutdownHookErrorDoesNotStopRemaining(t *testing.T) {
	a := &App{}

	ran := false
	a.RegisterShutdownHook(func(ctx context.Context) error {
		return errors.New("exporter unreachable")
	})
	a.RegisterShutdownHook(func(ctx context.Context) error {
		ran = true
		return nil
	})

	a.runShutdownHooks(context.Background())

	assert.True(t, ran, "el fallo de un hook no debe impedir los siguientes")
}

func TestApplyConfigNotifiesCallbacks(t *testing.T) {
	a := &App{Config: &config.Config{}}

	var got *config.Config
	a.RegisterConfigCallback(func(cfg *config.Config) {
		got = cfg
	})

	updated := &config.Config{}
	updated.AI.Model = "openai/gpt-4o"
	a.ApplyConfig(updated)

	assert.Same(t, updated, got)
	assert.Same(t, updated, a.Config)
}
