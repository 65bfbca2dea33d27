// Package config loads gapikit settings from a TOML file and the environment.
//
// The file is looked up in this order, and the first one found wins:
//
//  1. the path passed with --config
//  2. ./gapikit.toml
//  3. $XDG_CONFIG_HOME/gapikit/config.toml (or the platform equivalent)
//
// A missing file is not an error. Environment variables override file values,
// and command line flags override both.
//
// Example gapikit.toml:
//
//	account = "work"
//	client_id = "1234.apps.googleusercontent.com"
//	client_secret = "..."
//	default_time_zone = "Europe/Berlin"
//	log_level = "debug"
//
//	[instrumentation]
//	enabled = true
//	metrics_exporter = "prometheus"
package config
