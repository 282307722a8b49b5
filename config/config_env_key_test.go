package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"env": map[string]any{
			"log": map[string]any{
				"slowQueryThreshold": "200ms",
			},
		},
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId":        "",
			"publishTimeout": "5s",
		},
		"jwt": map[string]any{
			"key": "",
		},
		"seed": map[string]any{
			"adminPassword": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "PUBSUB_PUBLISHTIMEOUT", want: "pubsub.publishTimeout"},
		{envKey: "ENV_LOG_SLOWQUERYTHRESHOLD", want: "env.log.slowQueryThreshold"},
		{envKey: "JWT_KEY", want: "jwt.key"},
		{envKey: "SEED_ADMINPASSWORD", want: "seed.adminPassword"},
		{envKey: "SEED__ENABLED", want: "seed.enabled"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}
