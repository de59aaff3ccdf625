package app

const ServiceName = "fitness-scheduler"

// Build-time injection variables
// These are set via -ldflags during build:
//
//	go build -ldflags="-X 'fitness-scheduler/internal/app.Version=1.0.0'" ./cmd/server
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
