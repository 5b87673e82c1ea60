package account

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	account := router.Group("/account")
	account.POST("", Create)
	account.GET("/:type/:id/activate", Activate)
	account.GET("/:type/:id/deactivate", Deactivate)
	account.GET("/:type/:id/balance", Balance)
}
