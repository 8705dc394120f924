package influxdb

import "errors"

// Sentinel errors, matched with errors.Is.
var (
	// ErrDisabled means the influxdb section of config.yaml is off.
	// Startup treats this as "run without analytics", not a failure.
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	// ErrConnectionFailed wraps a failed initial ping.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrNotConnected is returned by HealthCheck after Close.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrWriteFailed marks a synchronous write failure; most write
	// errors arrive asynchronously via the SetOnError callback instead.
	ErrWriteFailed = errors.New("influxdb: write failed")
)
