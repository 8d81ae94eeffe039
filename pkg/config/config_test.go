package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.DB.Migrate)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_MAX_CONNS", "8")
	v.Set("DB_MIGRATE", "true")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 8, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.Migrate)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_PuertoInvalido(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", 70000)
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "bodega", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/bodega?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestFromViper_Operadores(t *testing.T) {
	v := viper.New()
	v.Set("AUTH_OPERATORS", "ana:admin:$2a$10$abc, luis:lector:$2a$10$def")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	require.Len(t, cfg.Auth.Operators, 2)
	assert.Equal(t, OperatorConfig{Username: "ana", Role: "admin", PasswordHash: "$2a$10$abc"}, cfg.Auth.Operators[0])
	assert.Equal(t, "luis", cfg.Auth.Operators[1].Username)
}

func TestFromViper_OperadoresInvalidos(t *testing.T) {
	for _, raw := range []string{"ana:admin", "ana:jefe:$2a$10$abc", ":admin:$2a$10$abc"} {
		v := viper.New()
		v.Set("AUTH_OPERATORS", raw)
		_, err := fromViper(v)
		assert.Error(t, err, raw)
	}
}
