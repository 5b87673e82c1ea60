package loyalty

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	loyalty := router.Group("/loyalty")
	loyalty.POST("/deposit", Deposit)
	loyalty.POST("/withdraw", Withdraw)
	loyalty.POST("/cancel", Cancel)
}
