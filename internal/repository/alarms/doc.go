// Package alarms implements persistence for the alarm collection.
//
// The collection is always loaded and saved as a whole. FileRepository keeps
// it as a JSON array on disk; SQLiteRepository keeps the same JSON under a
// single key of a key-value table. New picks a backend from the settings.
package alarms
