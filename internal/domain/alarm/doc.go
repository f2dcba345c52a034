// Package alarm contains the core domain types of the alarm clock.
//
// It defines the Alarm record (the only persisted entity), the recognised
// weekday names, validation of user-supplied alarms and the list filters used
// by the command line front-end. Transient trigger state is deliberately not
// part of Alarm; the trigger engine keeps it in its own table.
package alarm
