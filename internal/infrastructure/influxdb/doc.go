// Package influxdb provides quote analytics storage for StayKit Core.
//
// It wraps the official influxdb-client-go v2 library with StayKit-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package records time-series data for operator dashboards:
//   - Generated quotes (subtotal, discount tier, per-room cost, warnings)
//   - Template match requests and coverage misses
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "staykit",
//	    Bucket: "analytics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteQuoteMetric("cfg-123", "hotel", 25, 16400, 0.05, 15580, 623.2, 1)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via the
// SetOnError callback. Connection and health check errors are returned
// directly. Analytics are best-effort: a failed write never blocks or
// fails a quote request.
package influxdb
