package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courierlabs/nameplate/internal/logger"
	"github.com/courierlabs/nameplate/internal/naming"
	"github.com/courierlabs/nameplate/internal/registry"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string         // Host headers allowed to access the server
	AllowedCIDRS  []string         // IPs allowed to access guarded endpoints
	TrustProxy    bool             // true if running behind a trusted reverse proxy
	TopologyFile  string           // Path to the topology file
	RedisClient   *redis.Client    // Redis client connection
	Registry      *registry.Memory // In-memory identifier registry
	Strategy      *naming.Strategy // Naming strategy used for previews
	ReloadTrigger chan struct{}    // Channel to trigger a manual topology reload
}
