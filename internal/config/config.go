package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	NamingDomain string // domain prefix for identifiers (empty = built-in default)
	HostLabel    string // override the auto-detected host label (optional)

	TopologyFile   string        // path to the topology.yaml describing the routing engine
	ReloadInterval time.Duration // interval to reload the topology file (default: 1h)
	GCInterval     time.Duration // interval to garbage-collect disabled entries (default: 24h)
	GCThreshold    time.Duration // how long an entry may stay disabled before deletion

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. behind a tunnel)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NAMEPLATE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NAMEPLATE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NAMEPLATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAMEPLATE_PRETTY_LOG", true),

		// Naming
		NamingDomain: getenv("NAMEPLATE_DOMAIN", ""),
		HostLabel:    getenv("NAMEPLATE_HOST_LABEL", ""),

		// Topology source
		TopologyFile:   getenv("NAMEPLATE_TOPOLOGY_FILE", "/app/topology.yaml"),
		ReloadInterval: mustDuration("NAMEPLATE_RELOAD_INTERVAL", time.Hour),
		GCInterval:     mustDuration("NAMEPLATE_GC_INTERVAL", 24*time.Hour),
		GCThreshold:    mustDuration("NAMEPLATE_GC_THRESHOLD", 0),

		// Redis settings
		RedisAddr:             requireEnv("NAMEPLATE_REDIS_ADDR"),
		RedisUser:             getenv("NAMEPLATE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("NAMEPLATE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("NAMEPLATE_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("NAMEPLATE_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NAMEPLATE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("NAMEPLATE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NAMEPLATE_TRUST_PROXY", false),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("FATAL: NAMEPLATE_REDIS_PASSWORD is required when NAMEPLATE_REDIS_PASSWORD_REQUIRED=true")
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := requireEnv(key)
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
