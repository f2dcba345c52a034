// Package trigger decides when alarms fire.
//
// The Engine is evaluated once per tick against the whole alarm collection.
// An alarm fires when it is enabled, its time equals the current HH:MM and
// it is scheduled for the current weekday. The engine remembers, per alarm
// id, the minute it last fired in, so a one-second tick never fires the same
// alarm twice within one matching minute. That memory lives only in the
// engine and is never written back to the alarm records.
package trigger
