package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "test"} {
		t.Run(env, func(t *testing.T) {
			l, err := New(Options{Env: env})
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_Rejects(t *testing.T) {
	cases := map[string]Options{
		"unknown env":    {Env: "staging"},
		"invalid level":  {Env: "prod", Level: "loud"},
		"invalid format": {Env: "prod", Format: "xml"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(opts)
			assert.Error(t, err)
		})
	}
}

func TestNew_LevelOverride(t *testing.T) {
	l, err := New(Options{Env: "prod", Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = New(Options{Env: "test", Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := Into(context.Background(), zap.New(core))

	ctx = With(ctx, zap.String("workflow", "multi_source"))
	FromContext(ctx).Info("matched")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "multi_source", entries[0].ContextMap()["workflow"])
}
