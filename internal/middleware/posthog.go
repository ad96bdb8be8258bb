package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker receives API usage events.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health": true,
}

// UsageTrackingMiddleware reports successful API calls per actor, tagged with the tenant.
func UsageTrackingMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		actorID, ok := GetActorIDFromContext(c)
		if !ok {
			return
		}

		// "/api/v1/tenants/:tenant_id/entries/:entry_id/post" -> "api_v1_tenants_entries_post"
		var parts []string
		for _, seg := range strings.Split(strings.Trim(c.FullPath(), "/"), "/") {
			if seg != "" && !strings.HasPrefix(seg, ":") {
				parts = append(parts, seg)
			}
		}
		if len(parts) == 0 {
			return
		}

		tracker.Enqueue(actorID, strings.Join(parts, "_"), map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
			"tenant_id":   c.Param("tenant_id"),
		})
	}
}
