// Package config loads and validates StayKit Core's configuration.
//
// Resolution order is defaults, then the YAML file, then STAYKIT_*
// environment variables; the merged result is validated once and the
// service refuses to start on a bad config. Loading happens a single
// time at startup, so there is no runtime cost.
//
//	cfg, err := config.Load("configs/config.yaml")
//
// Secrets (the JWT secret, the operator password, broker and InfluxDB
// tokens) belong in environment variables, not in the file.
package config
