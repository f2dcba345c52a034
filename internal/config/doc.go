// Package config defines the settings shared by alarm-clock and alarm-watch
// and provides helpers to load, validate and save them in YAML format.
//
// A missing settings file at the default location is not an error: the
// defaults describe a working single-user setup.
package config
