package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, SourceSeed, cfg.DataSource)
	assert.Equal(t, "", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Kiosk.UpcomingDays)
	assert.Equal(t, "pt-BR", cfg.Kiosk.Locale)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
	assert.Zero(t, cfg.Kiosk.ReloadInterval)
	assert.Equal(t, "./exports", cfg.Kiosk.ExportDir)
}

func TestSQLiteSourceSelectsDriver(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DATA_SOURCE", "SQLite")
	v.Set("KIOSK_UPCOMING_DAYS", -3)
	v.Set("ALLOWED_ORIGINS", "http://kiosk.local/, ,http://admin.local")

	cfg := fromViper(v)

	assert.Equal(t, SourceSQLite, cfg.DataSource)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Kiosk.UpcomingDays)
	assert.Equal(t, []string{"http://kiosk.local/", "http://admin.local"}, cfg.CORS.AllowedOrigins)
}

func TestReloadIntervalParsing(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("KIOSK_RELOAD_INTERVAL", "15m")
	assert.Equal(t, 15*time.Minute, fromViper(v).Kiosk.ReloadInterval)

	v.Set("KIOSK_RELOAD_INTERVAL", "soon")
	assert.Zero(t, fromViper(v).Kiosk.ReloadInterval)
}

func TestKioskLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, time.Local, KioskConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, time.Local, KioskConfig{}.Location())
	assert.Equal(t, "UTC", KioskConfig{Timezone: "UTC"}.Location().String())
}
