// Package process keeps a single alarm-watch instance per user session by
// inspecting the host process table.
package process
