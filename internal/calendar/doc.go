// Package calendar exports alarms as an iCalendar document so they can be
// viewed in calendar applications. Each alarm becomes a recurring VEVENT at
// its time of day, in floating local time, with a display VALARM.
package calendar
