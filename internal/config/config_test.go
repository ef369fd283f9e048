package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("RA_STR", "value")
	t.Setenv("RA_INT", "12")
	t.Setenv("RA_BAD_INT", "twelve")
	t.Setenv("RA_DUR", "90s")
	t.Setenv("RA_BAD_DUR", "-1s")

	assert.Equal(t, "value", EnvDefault("RA_STR", "def"))
	assert.Equal(t, "def", EnvDefault("RA_MISSING", "def"))
	assert.Equal(t, 12, EnvIntDefault("RA_INT", 10))
	assert.Equal(t, 10, EnvIntDefault("RA_BAD_INT", 10))
	assert.Equal(t, 90*time.Second, EnvDurationDefault("RA_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("RA_BAD_DUR", time.Second))
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("BCRYPT_COST", "11")

	cfg := Load()
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "user_events", cfg.KafkaTopic)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		JWTSecret:   []byte("s3cret"),
		DatabaseURL: "sqlite://records.db",
		KafkaTopic:  "user_events",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres", mutate: func(c *Config) { c.DatabaseURL = "postgres://u:p@db:5432/records" }},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = nil }, wantErr: "JWT_SECRET"},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: "DATABASE_URL"},
		{name: "sqlite without path", mutate: func(c *Config) { c.DatabaseURL = "sqlite://" }, wantErr: "sqlite://"},
		{name: "brokers without topic", mutate: func(c *Config) {
			c.KafkaBrokers = []string{"k1:9092"}
			c.KafkaTopic = ""
		}, wantErr: "KAFKA_TOPIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsAll(t *testing.T) {
	err := Config{}.Validate()
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "DATABASE_URL")

	assert.Error(t, Config{}.ValidateStore())
	assert.NoError(t, Config{DatabaseURL: "sqlite://:memory:"}.ValidateStore())
}
