package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("CRM_TEST_STR", "value")
	t.Setenv("CRM_TEST_INT", "42")
	t.Setenv("CRM_TEST_BAD_INT", "forty")
	t.Setenv("CRM_TEST_BOOL", "true")
	t.Setenv("CRM_TEST_DUR", "90s")

	assert.Equal(t, "value", GetEnv("CRM_TEST_STR", "default"))
	assert.Equal(t, "default", GetEnv("CRM_TEST_MISSING", "default"))
	assert.Equal(t, 42, GetIntEnv("CRM_TEST_INT", 1))
	assert.Equal(t, 1, GetIntEnv("CRM_TEST_BAD_INT", 1))
	assert.True(t, GetBoolEnv("CRM_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDurationEnv("CRM_TEST_DUR", time.Minute))
	assert.Equal(t, time.Minute, GetDurationEnv("CRM_TEST_MISSING", time.Minute))
}

func TestLoad_Policy(t *testing.T) {
	t.Setenv("FEIN_DUPLICATE_CHECK", "true")
	t.Setenv("SSN_DUPLICATE_CHECK", "false")
	t.Setenv("DB_PORT", "6543")

	cfg := Load()
	assert.True(t, cfg.Policy.FEINDuplicateCheck)
	assert.False(t, cfg.Policy.SSNDuplicateCheck)
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
	assert.Equal(t, 5*time.Minute, cfg.Redis.SummaryTTL)
}
