package httpx

import "github.com/gin-gonic/gin"

// MessageResponse — тело ответа с сообщением (успех или ошибка).
type MessageResponse struct {
	Message string `json:"message"`
}

// AbortWithMessage — ответ {"message": ...} с кодом status.
func AbortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, MessageResponse{Message: message})
}
