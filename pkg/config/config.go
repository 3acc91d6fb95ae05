package config

import (
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
)

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	Store             string  // kind of store (memory, bolt, postgres, nats)
	StoreKey          string  // logical key holding the pace set collection
	BoltFile          string  // path to the bolt database file
	DB                string  // connection string for the database
	NATSURL           string  // URL of the NATS server
	NATSBucket        string  // name of the NATS key-value bucket
	SpeedCap          float64 // upper bound for bike speeds in km/h
	WaitForServices   string  // duration to wait for other services to be ready
	LogLevel          string  // sets the log level (zap log level values)
	SQLLogLevel       string  // sets the log level for sql subsystem
	LogFormat         string  // text vs json
	LogFilter         string  // zapfilter rules, e.g. "debug:paceset info:*"
	EnableTelemetry   bool    // enable telemetry
	TelemetryEndpoint string  // endpoint for telemetry, "stdout" prints to console
	ProfilingPort     int     // port for profiling
	ServerAddr        string  // listen addr for the HTTP API
	Output            string  // output format (text, json, yaml)
)

// Config holds the configuration values which are used by the application
type Config struct {
	SpeedCap float64 // upper bound for bike speeds in km/h
}

// FromFlags collects the processed values of the current configuration
func FromFlags() Config {
	return Config{SpeedCap: SpeedCap}
}

// PaceOptions returns the solver options for this configuration
func (c Config) PaceOptions() []pace.Option {
	return []pace.Option{pace.WithSpeedCap(c.SpeedCap)}
}
