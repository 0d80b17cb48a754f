package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paperdesk/pkg/apperror"
)

// Actor is the caller identity resolved by the auth middleware,
// carried through the gin context for every protected request.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// GetActor retrieves the authenticated caller from the context
func GetActor(c *gin.Context) (Actor, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return Actor{}, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return Actor{}, apperror.ErrUnauthorized
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	return Actor{ID: userID, Role: roleStr}, nil
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
