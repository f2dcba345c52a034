package trigger

import "github.com/oshokin/alarm-clock/internal/domain/alarm"

// AlertText is the visible alert line, e.g. "Alarm: Wake - 07:00".
func AlertText(a *alarm.Alarm) string {
	if a.Name == "" {
		return "Alarm - " + a.Time
	}

	return "Alarm: " + a.Name + " - " + a.Time
}

// NotificationTitle is the title of the system notification.
func NotificationTitle(a *alarm.Alarm) string {
	if a.Name == "" {
		return "Alarm"
	}

	return "Alarm: " + a.Name
}

// NotificationBody is the body of the system notification.
func NotificationBody(a *alarm.Alarm) string {
	body := "Time: " + a.Time
	if a.Category != "" {
		body += "\nCategory: " + a.Category
	}

	return body
}
