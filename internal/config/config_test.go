package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_NAME", "engagement_test")
	t.Setenv("PROFILE_TIMEOUT", "750ms")
	t.Setenv("MATCH_TIMEOUT", "nonsense")
	t.Setenv("AUDIT_RETENTION_DAYS", "7")
	t.Setenv("CORS_ORIGINS", "http://a.test:, ,http://b.test:")

	LoadConfig()

	assert.Equal(t, "engagement_test", DbName)
	assert.Equal(t, 750*time.Millisecond, ProfileTimeout)
	assert.Equal(t, 2*time.Second, MatchTimeout)
	assert.Equal(t, 7, AuditRetentionDays)
	assert.Equal(t, []string{"http://a.test:", "http://b.test:"}, CorsOrigins)
}
