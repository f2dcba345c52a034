// Package watcher implements alarm-watch: it reloads the stored collection,
// scans it once per tick and fires the console alert, sound and desktop
// notification for matching alarms.
package watcher
