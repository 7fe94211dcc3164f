package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, int64(OffsetOldest), cfg.ConsumerStartOffset)
	assert.Zero(t, cfg.ConsumerCommitInterval, "offsets are committed after each message")
	assert.Equal(t, DefaultConsumerRetryBackoff, cfg.ConsumerRetryBackoff)
	assert.True(t, cfg.EnableMiddleware)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092")
	t.Setenv(EnvKafkaConsumerStartOffset, "-1")
	t.Setenv(EnvKafkaConsumerRetryBackoff, "1s")
	t.Setenv(EnvKafkaProducerCompression, "zstd")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, int64(OffsetNewest), cfg.ConsumerStartOffset)
	assert.Equal(t, time.Second, cfg.ConsumerRetryBackoff)
	assert.Equal(t, "zstd", cfg.ProducerCompression)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		expect string
	}{
		{name: "empty broker", mutate: func(cfg *Config) { cfg.Brokers = []string{""} }, expect: "Broker 0"},
		{name: "unknown compression", mutate: func(cfg *Config) { cfg.ProducerCompression = "brotli" }, expect: "ProducerCompression"},
		{name: "bad acks", mutate: func(cfg *Config) { cfg.ProducerRequireAcks = 2 }, expect: "ProducerRequireAcks"},
		{name: "offset below oldest", mutate: func(cfg *Config) { cfg.ConsumerStartOffset = -3 }, expect: "ConsumerStartOffset"},
		{name: "max below min bytes", mutate: func(cfg *Config) { cfg.ConsumerMaxBytes = 0 }, expect: "ConsumerMaxBytes"},
		{name: "negative commit interval", mutate: func(cfg *Config) { cfg.ConsumerCommitInterval = -time.Second }, expect: "ConsumerCommitInterval"},
		{name: "negative retries", mutate: func(cfg *Config) { cfg.ConsumerMaxRetries = -1 }, expect: "ConsumerMaxRetries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expect)
		})
	}
}
