package notification

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed templates/firebase-messaging-sw.js.tmpl
var serviceWorkerSource string

var serviceWorkerTemplate = template.Must(template.New("firebase-messaging-sw.js").Parse(serviceWorkerSource))

// WebConfig is the public Firebase web app config baked into the service worker.
type WebConfig struct {
	SDKVersion        string
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
	Icon              string
}

// RenderServiceWorker builds firebase-messaging-sw.js for the web client.
func RenderServiceWorker(config WebConfig) ([]byte, error) {
	if config.SDKVersion == "" {
		return nil, fmt.Errorf("firebase js sdk version is required")
	}
	if config.Icon == "" {
		config.Icon = DefaultIcon
	}

	data := struct {
		WebConfig
		DefaultTitle string
	}{
		WebConfig:    config,
		DefaultTitle: DefaultDisplayTitle,
	}

	var buf bytes.Buffer
	if err := serviceWorkerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render service worker: %w", err)
	}

	return buf.Bytes(), nil
}
