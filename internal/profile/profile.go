// Package profile resolves recipients to their push-delivery tokens.
package profile

import (
	"github.com/katatrina/message-notifier/internal/dispatcher"
)

const fcmTokenField = "fcmToken"

// profileFromData reads the fields the dispatcher needs out of a user document.
// A token stored with any type other than string is treated as absent.
func profileFromData(id string, data map[string]interface{}) *dispatcher.UserProfile {
	profile := &dispatcher.UserProfile{ID: id}

	if token, ok := data[fcmTokenField].(string); ok {
		profile.FCMToken = token
	}

	return profile
}
