package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/trigger"
)

// ProductID identifies the generator in exported calendars.
const ProductID = "-//oshokin//alarm-clock//EN"

// Filename is the suggested name for exported calendars.
const Filename = "alarms.ics"

// floatingLayout formats a local date-time without a zone.
const floatingLayout = "20060102T150405"

//nolint:gochecknoglobals // Fixed lookup table.
var weekdays = map[string]rrule.Weekday{
	time.Monday.String():    rrule.MO,
	time.Tuesday.String():   rrule.TU,
	time.Wednesday.String(): rrule.WE,
	time.Thursday.String():  rrule.TH,
	time.Friday.String():    rrule.FR,
	time.Saturday.String():  rrule.SA,
	time.Sunday.String():    rrule.SU,
}

// Export writes alarms as an iCalendar document. Alarms whose time cannot be
// parsed are left out; the number of exported alarms is returned.
func Export(w io.Writer, alarms []alarm.Alarm, now time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	exported := 0

	for i := range alarms {
		event, ok := newEvent(&alarms[i], now)
		if !ok {
			continue
		}

		cal.Children = append(cal.Children, event.Component)
		exported++
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("encode calendar: %w", err)
	}

	return exported, nil
}

// newEvent renders one alarm; ok is false when its time is not HH:MM.
func newEvent(a *alarm.Alarm, now time.Time) (*ical.Event, bool) {
	clock, err := time.Parse(trigger.MinuteLayout, a.Time)
	if err != nil {
		return nil, false
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, a.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetText(ical.PropSummary, trigger.NotificationTitle(a))
	event.Props.SetText(ical.PropDescription, trigger.NotificationBody(a))

	if a.Category != "" {
		event.Props.SetText(ical.PropCategories, a.Category)
	}

	if !a.Enabled {
		event.Props.SetText(ical.PropStatus, "CANCELLED")
	}

	start := ical.NewProp(ical.PropDateTimeStart)
	start.SetValueType(ical.ValueDateTime)
	start.Value = firstOccurrence(a, clock, now).Format(floatingLayout)
	event.Props.Set(start)

	event.Props.SetRecurrenceRule(recurrence(a.Days))

	reminder := ical.NewComponent(ical.CompAlarm)
	reminder.Props.SetText(ical.PropAction, "DISPLAY")
	reminder.Props.SetText(ical.PropDescription, trigger.AlertText(a))

	startsAt := ical.NewProp(ical.PropTrigger)
	startsAt.SetValueType(ical.ValueDuration)
	startsAt.Value = "PT0S"
	reminder.Props.Set(startsAt)

	event.Children = append(event.Children, reminder)

	return event, true
}

// recurrence is daily for an empty day list and weekly on the listed days otherwise.
func recurrence(days []string) *rrule.ROption {
	byDay := make([]rrule.Weekday, 0, len(days))

	for _, day := range days {
		if wd, ok := weekdays[day]; ok {
			byDay = append(byDay, wd)
		}
	}

	if len(byDay) == 0 {
		return &rrule.ROption{Freq: rrule.DAILY}
	}

	return &rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byDay,
	}
}

// firstOccurrence is the first scheduled day, starting today, at the alarm's time.
func firstOccurrence(a *alarm.Alarm, clock, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())

	for range len(alarm.Weekdays) {
		if a.MatchesDay(day.Weekday().String()) {
			return day
		}

		day = day.AddDate(0, 0, 1)
	}

	return day
}
