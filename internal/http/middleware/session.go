package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	sessionKey    = "sessionID"
)

// Session binds every request to a dashboard session. A missing or malformed
// X-Session-ID starts a new session; the id in use is echoed back.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(strings.TrimSpace(c.GetHeader(SessionHeader)))
		if err != nil || id == uuid.Nil {
			id = uuid.New()
		}

		c.Set(sessionKey, id)
		c.Header(SessionHeader, id.String())
		c.Next()
	}
}

func MustSession(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return id, true
}
