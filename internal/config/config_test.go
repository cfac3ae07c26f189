package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvString(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", envString("TEST_STR", "def"))
	assert.Equal(t, "def", envString("TEST_STR_MISSING", "def"))
}

func TestEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "valid", value: "36h", want: 36 * time.Hour},
		{name: "invalid falls back", value: "not-a-duration", want: 24 * time.Hour},
		{name: "empty falls back", value: "", want: 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DUR", tt.value)
			assert.Equal(t, tt.want, envDuration("TEST_DUR", 24*time.Hour))
		})
	}
}

func TestEnvList(t *testing.T) {
	def := []string{"a", "b"}

	t.Setenv("TEST_LIST", "m1, m2 ,m3")
	assert.Equal(t, []string{"m1", "m2", "m3"}, envList("TEST_LIST", def))

	t.Setenv("TEST_LIST", " , ")
	assert.Equal(t, def, envList("TEST_LIST", def))

	assert.Equal(t, def, envList("TEST_LIST_MISSING", def))
}

func TestEnvMode(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.AppEnv = "production"
	assert.True(t, cfg.IsProduction())
}
