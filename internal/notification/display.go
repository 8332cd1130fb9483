package notification

// DisplayNotification maps a background payload to the notification shown by the browser.
// It is the Go model of onBackgroundMessage in the rendered service worker; both take
// their defaults from DefaultDisplayTitle and DefaultIcon.
func DisplayNotification(payload BackgroundPayload, icon string) DisplayedNotification {
	if icon == "" {
		icon = DefaultIcon
	}

	displayed := DisplayedNotification{
		Title: DefaultDisplayTitle,
		Icon:  icon,
		Data:  map[string]string{},
	}

	if payload.Notification != nil {
		if payload.Notification.Title != "" {
			displayed.Title = payload.Notification.Title
		}
		displayed.Body = payload.Notification.Body
	}

	for key, value := range payload.Data {
		displayed.Data[key] = value
	}

	return displayed
}
