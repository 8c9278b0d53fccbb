package errors

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pageLayout = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>%s</h1>
<p>%s</p>
<p><a href="/">Back to home</a></p>
</body>
</html>
`

// renders a minimal html error page for browser-facing routes
func Page(c *gin.Context, status int, title, message string) {
	if title == "" {
		title = http.StatusText(status)
	}

	t := html.EscapeString(title)
	body := fmt.Sprintf(pageLayout, t, t, html.EscapeString(message))

	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// shown when the identity provider rejects the code or profile fetch
func SignInFailed(c *gin.Context) {
	Page(c, http.StatusBadGateway, "Sign-in failed",
		"We could not complete sign-in with Google. Please try again.")
}
