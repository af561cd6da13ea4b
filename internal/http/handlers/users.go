package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/domain/models"
	"portal/internal/http/middleware"
	"portal/internal/services"
)

func userService(c *gin.Context) services.UserService {
	return services.UserService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/me
func GetMe(c *gin.Context) {
	rc, ok := sessionContext(c)
	if !ok {
		return
	}
	u, err := userService(c).Get(int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /api/admin/users  (manager/admin)
func GetUsers(c *gin.Context) {
	out, err := userService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/users/:id  (manager/admin)
func GetUserByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := userService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PATCH /api/admin/users/:id  (manager/admin)
func UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch models.UserUpdate
	if !BindJSONOrError(c, &patch) {
		return
	}
	u, err := userService(c).Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/admin/users/:id  (admin)
func DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := userService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}
