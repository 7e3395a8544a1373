package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Outbox.validate(); err != nil {
		return fmt.Errorf("outbox: %w", err)
	}

	if c.History.RetentionDays <= 0 {
		return fmt.Errorf("history: retention_days must be > 0 (got %d)", c.History.RetentionDays)
	}

	if len(c.Kafka.BrokerList()) == 0 {
		return fmt.Errorf("kafka: brokers must not be empty")
	}
	if strings.TrimSpace(c.Kafka.DefaultTopic) == "" {
		return fmt.Errorf("kafka: default_topic must not be empty")
	}

	return nil
}

func (o *Outbox) validate() error {
	if o.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", o.BatchSize)
	}
	if o.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be > 0 (got %d)", o.MaxRetries)
	}
	if o.BackoffBase <= 0 {
		return fmt.Errorf("backoff_base must be > 0 (got %v)", o.BackoffBase)
	}
	if o.DispatchInterval <= 0 {
		return fmt.Errorf("dispatch_interval must be > 0 (got %v)", o.DispatchInterval)
	}
	if o.ProcessedRetentionDays <= 0 {
		return fmt.Errorf("processed_retention_days must be > 0 (got %d)", o.ProcessedRetentionDays)
	}
	return nil
}

// splitAndTrim splits a comma-separated list, dropping empty elements.
func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
