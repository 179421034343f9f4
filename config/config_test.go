package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVenueLocation(t *testing.T) {
	saved := AppConfig
	t.Cleanup(func() { AppConfig = saved })

	AppConfig.VenueTimezone = ""
	assert.Equal(t, time.Local, VenueLocation())

	AppConfig.VenueTimezone = "UTC"
	assert.Equal(t, "UTC", VenueLocation().String())

	AppConfig.VenueTimezone = "Not/AZone"
	assert.Equal(t, time.Local, VenueLocation())
}

func TestLoadConfigDefaults(t *testing.T) {
	saved := AppConfig
	t.Cleanup(func() { AppConfig = saved })
	t.Setenv("STORE_BACKEND", StoreMemory)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,172.16.0.0/12")

	LoadConfig()

	assert.Equal(t, StoreMemory, AppConfig.StoreBackend)
	assert.Equal(t, AuthFirebase, AppConfig.AuthMode)
	assert.Equal(t, "gemini-1.5-flash", AppConfig.GeminiModel)
	assert.Equal(t, 60*time.Minute, ReminderLead())
	assert.Equal(t, 2, AppConfig.RedisQueueDB)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, AppConfig.TrustedProxies)
}
