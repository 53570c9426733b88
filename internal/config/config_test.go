package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)

	// The nightly run fires at 07:00 UTC, overnight on the yard's
	// west-coast clock.
	assert.True(t, cfg.Export.Enabled)
	assert.Equal(t, "07:00", cfg.Export.Schedule)
	assert.Equal(t, "UTC", cfg.Export.Timezone)
	assert.Equal(t, "qb_export", cfg.Export.FilePrefix)
}
