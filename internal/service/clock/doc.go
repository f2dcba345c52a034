// Package clock owns the alarm collection used by the alarm-clock CLI.
//
// Every accepted mutation replaces the whole collection and persists it
// through the repository before it becomes visible. Rejected mutations leave
// both the in-memory and the stored collection untouched.
package clock
