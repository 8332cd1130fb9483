package notification

const (
	DefaultDisplayTitle = "New message"
	DefaultIcon         = "/icons/Icon-192.png"
)

// BackgroundPayload is what the web client receives for a push while the page is in the background.
type BackgroundPayload struct {
	Notification *PayloadNotification `json:"notification,omitempty"`
	Data         map[string]string    `json:"data,omitempty"`
}

type PayloadNotification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// DisplayedNotification is the notification the service worker asks the browser to show.
type DisplayedNotification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Icon  string            `json:"icon"`
	Data  map[string]string `json:"data"`
}
