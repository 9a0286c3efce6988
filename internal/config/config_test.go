package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppConfig_Location(t *testing.T) {
	c := &AppConfig{Timezone: "America/Argentina/Buenos_Aires"}
	loc := c.Location()
	_, offset := time.Date(2024, 3, 15, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, -3*3600, offset)

	bad := &AppConfig{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, bad.Location())
}

func TestAppConfig_IsDevelopment(t *testing.T) {
	assert.True(t, (&AppConfig{Env: "development"}).IsDevelopment())
	assert.True(t, (&AppConfig{Env: "dev"}).IsDevelopment())
	assert.False(t, (&AppConfig{Env: "production"}).IsDevelopment())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: "5432", Name: "retail", User: "pos", Password: "s3", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=pos password=s3 dbname=retail port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("PRINTER_WIDTH", "48")

	cfg := Load()
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 48, cfg.Printer.Width)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, "retail-api", cfg.App.Name)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
}
