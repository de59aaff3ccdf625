package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fitness-scheduler/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadFrom("test", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "fitness_center", cfg.Database.DBName)
	assert.Equal(t, "none", cfg.Events.Backend)
	assert.Equal(t, "fitness.events", cfg.Events.NATS.Subject)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
  cors_origins:
    - http://localhost:3000
database:
  host: db.internal
  name: gym
events:
  backend: kafka
  kafka:
    brokers: ["k1:9092", "k2:9092"]
    topic: gym.changes
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(yaml), 0o600))

	cfg, err := config.LoadFrom("staging", dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "gym", cfg.Database.DBName)
	assert.Equal(t, "kafka", cfg.Events.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, "gym.changes", cfg.Events.Kafka.Topic)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yaml"), []byte("database:\n  user: fromfile\n"), 0o600))

	t.Setenv("DB_USER", "fromenv")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("PORT", "7070")
	t.Setenv("EVENTS_BACKEND", "nats")

	cfg, err := config.LoadFrom("local", dir)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "nats", cfg.Events.Backend)
}

func TestRejectsUnknownEventsBackend(t *testing.T) {
	t.Setenv("EVENTS_BACKEND", "carrier-pigeon")

	_, err := config.LoadFrom("test", t.TempDir())
	assert.ErrorContains(t, err, "unsupported events backend")
}
