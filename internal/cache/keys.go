package cache

import "fmt"

const (
	// ChangesChannel carries state change events between server instances.
	ChangesChannel = "nexus:changes"

	chatRateResource = "chat:%s"
)

// ChatRateResource names the rate limit bucket for assistant calls of a user.
func ChatRateResource(userID string) string {
	return fmt.Sprintf(chatRateResource, userID)
}
