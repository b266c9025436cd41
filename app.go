package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App wires route handlers to their collaborators. It is built once in main
// and passed around explicitly; there are no package-level singletons.
type App struct {
	cfg  Config
	db   *gorm.DB
	mail Mailer
	ai   CompletionClient
}

// pageData assembles the template payload common to every rendered page: the
// current user (if any) and a pending flash message, merged with extra.
func (a *App) pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{"User": nil}
	if u, ok := userFrom(c); ok {
		data["User"] = u
	}
	if level, msg := takeFlash(c); msg != "" {
		data["Flash"] = gin.H{"Level": level, "Message": msg}
	}
	for k, val := range extra {
		data[k] = val
	}
	return data
}
