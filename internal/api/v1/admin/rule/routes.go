package rule

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rules", ListRules)
	router.POST("/rules", CreateRule)
	router.PUT("/rules/:id", UpdateRule)
	router.DELETE("/rules/:id", DeleteRule)
}
