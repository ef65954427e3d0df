package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PATH is the route prefix of the user details endpoint.
const PATH = "/users"

// StatusClientClosedRequest is recorded when the caller disconnects before the
// upstream call settles. Nothing is written to the wire.
const StatusClientClosedRequest = 499

type UserController struct {
	userService UserServiceInterface
}

func NewUserController(userService UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// SetupRoutes registers the user details route on r
func (uc *UserController) SetupRoutes(r gin.IRouter) {
	r.GET(PATH+"/:userId", uc.GetUserDetails)
}

// GetUserDetails handles GET /users/:userId
func (uc *UserController) GetUserDetails(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	log := logrus.WithField("user_id", userID)

	details, err := uc.userService.FetchUserDetails(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			log.Info("User not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, ErrServiceUnavailable):
			log.WithError(err).Warn("User data source unavailable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
		case errors.Is(err, context.Canceled):
			log.Debug("Client closed request before user details were fetched")
			c.AbortWithStatus(StatusClientClosedRequest)
		default:
			log.WithError(err).Error("Failed to fetch user details")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user details"})
		}
		return
	}

	c.JSON(http.StatusOK, details)
}
