package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/courierlabs/nameplate/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		entryCount := d.Registry.Count()
		lastReload := d.Registry.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		redisStatus := checkRedis(d)

		components := map[string]componentStatus{
			"registry": {
				OK:            entryCount > 0,
				EntriesLoaded: &entryCount,
				LastReload:    lastReloadStr,
			},
			"redis": redisStatus,
			"naming": {
				OK:   true,
				Mode: "domain=" + d.Strategy.Domain() + " host=" + d.Strategy.HostLabel(),
			},
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	if reg, exists := components["registry"]; exists {
		if !reg.OK || (reg.EntriesLoaded != nil && *reg.EntriesLoaded == 0) {
			return "critical" // Nothing registered = critical
		}
	}

	// Redis down is non-critical: memory stays the primary source
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "restart-recovery-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "restart-recovery-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "restart-recovery-enabled",
		Error:  "none",
	}
}
