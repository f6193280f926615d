package essays

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, lister Lister) {
	router.GET("/essays", ListEssaysHandler(lister))
}
