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
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.False(t, cfg.Availability.AllowParallel)
	assert.Equal(t, 0, cfg.Availability.GlobalMaxPerDay)
	assert.Equal(t, 30*time.Minute, cfg.Availability.SlotStep)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SuitableTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.Brokers)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestOverridesAreSanitised(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("AVAILABILITY_GLOBAL_MAX_PER_DAY", -4)
	v.Set("OTEL_SAMPLING_RATIO", 3.5)
	v.Set("SUITABLE_CACHE_TTL", "not-a-duration")
	v.Set("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")

	cfg := fromViper(v)

	assert.Equal(t, 0, cfg.Availability.GlobalMaxPerDay)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SuitableTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Brokers)
}
