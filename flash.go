package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// setFlash queues a one-shot message for the next rendered page. Level is
// "success" or "error".
func setFlash(c *gin.Context, level, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, level+"|"+msg, 60, "/", "", false, true)
}

// takeFlash reads and clears the pending flash message, if any.
func takeFlash(c *gin.Context) (level, msg string) {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return "", ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	level, msg, found := strings.Cut(raw, "|")
	if !found {
		return "", raw
	}
	return level, msg
}
