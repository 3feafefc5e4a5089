package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Alerts.ActivityWindowDays)
	assert.Equal(t, 30, cfg.Alerts.VelocityWindowDays)
	assert.Equal(t, 10, cfg.Alerts.DefaultThreshold)
	assert.Equal(t, 60, cfg.Cache.AlertTTLSeconds)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres", cfg.App.Storage)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALERTS_VELOCITY_WINDOW_DAYS", "14")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("DB_PORT", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 14, cfg.Alerts.VelocityWindowDays)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5432, cfg.DB.Port, "un valor no numérico cae al valor por defecto")
}

func TestLoad_VentanaInvalida(t *testing.T) {
	t.Setenv("ALERTS_ACTIVITY_WINDOW_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("APP_STORAGE", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "stock", Password: "p@ss:word", DBName: "stockflow", SSLMode: "disable"}
	assert.Equal(t, "postgres://stock:p%40ss%3Aword@db:5432/stockflow?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
