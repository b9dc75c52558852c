package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "ucoffee_db", cfg.DB.DBName)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "*", cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.Auth.AdminEnforced)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.ProductTTL)
}

func TestFromViper_SinSecretConAdminForzado(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_AdminAbiertoNoRequiereSecret(t *testing.T) {
	v := viper.New()
	v.Set("AUTH_ADMIN_ENFORCED", "false")
	v.Set("DB_PORT", "6543")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Auth.AdminEnforced)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.Redis.Enabled())
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "ucoffee_db", SSLMode: "disable"}
	dsn := c.DSN()
	assert.Contains(t, dsn, "postgres://app:p%40ss%3Aw%2Frd@db:5432/ucoffee_db")
	assert.Contains(t, dsn, "sslmode=disable")

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
