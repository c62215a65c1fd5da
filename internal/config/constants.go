package config

const (
	AppName    = "hangulhub"
	AppVersion = "1.0.0"
)

const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultAccessTTLMinutes = 60
	DefaultRefreshTTLHours  = 24 * 7
	DefaultUploadDir        = "uploads"
)
