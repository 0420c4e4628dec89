// Package constants defines application constants
package constants

// Application constants
const (
	AppName   = "wpcraft"
	UserAgent = "wpcraft/1.0"
)

// Configuration defaults
const (
	DefaultScope      = "catalog/city"
	DefaultResolution = "default"
	ConfigEnvVar      = "WPCRAFT_CONFIG"
)

// Scope kind constants
const (
	ScopeCatalog  = "catalog"
	ScopeTag      = "tag"
	ScopeSearch   = "search"
	ScopeLiked    = "liked"
	ScopeDisliked = "disliked"
)

// Auto switch interval units
const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
	UnitDays    = "days"
)

// Valid auto switch units
var ValidUnits = []string{UnitMinutes, UnitHours, UnitDays}

// HTTP constants
const (
	MaxRetries          = 3
	RequestTimeout      = 30 // seconds
	MaxIdleConns        = 10
	MaxIdleConnsPerHost = 2
	IdleConnTimeout     = 30 // seconds
	RetryDelaySeconds   = 1
	FetchWorkers        = 8 // concurrent listing page fetches
)

// State constants
const (
	MaxHistorySize = 100
	StateFileName  = "state.db"
	IndexCacheDir  = "by_scope"
	ImageCacheDir  = "images"
)

// CronMarker tags crontab entries owned by wpcraft
const CronMarker = "wpcraft_auto"

// File permission constants
const (
	DirPermissions  = 0o755
	FilePermissions = 0o644
)
