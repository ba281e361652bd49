package redis

import (
	"fmt"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
)

// Key prefix for all session data
const keyPrefix = "nextgen"

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// userSessionsIndexKey returns the Redis key for the SET of session tokens of a user
func userSessionsIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:user_sessions:%s", keyPrefix, userID)
}
