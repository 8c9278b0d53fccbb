package health

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.Engine, checker GatewayChecker) {
	router.GET("/health", Handler)
	router.GET("/health/gateway", GatewayHandler(checker))
	router.GET("/ping", PingHandler)
}
