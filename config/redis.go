package config

import "time"

// Redis Redis配置信息
// An empty URL disables caching for the lifetime of the process.
type Redis struct {
	URL           string `json:"url" yaml:"url"`
	DialTimeoutMs int    `json:"dial_timeout_ms" yaml:"dial_timeout_ms"`
}

func (r *Redis) DialTimeout() time.Duration {
	return time.Duration(r.DialTimeoutMs) * time.Millisecond
}

func (r *Redis) withDefaults() {
	if r.DialTimeoutMs <= 0 {
		r.DialTimeoutMs = 5000
	}
}
