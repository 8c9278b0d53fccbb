package webhooks

import "github.com/gin-gonic/gin"

const webhookPath = "/stripe/webhook"

func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	router.POST(webhookPath, WebhookHandler(deps))
	router.GET(webhookPath+"/test", TestHandler(deps))
}
