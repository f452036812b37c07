package view

import (
	"net/http"

	"blog-system/pkg/session"

	"github.com/gin-gonic/gin"
)

// 渲染层约定：核心只产出"视图指令"
// Render 输出视图名与命名数据，前端渲染层据此出页面
// Redirect 输出302跳转，flash消息挂在下一次渲染上

// ContextNotificationsKey 页面通知在gin.Context中的键名
const ContextNotificationsKey = "page_notifications"

// Page 渲染指令结构
type Page struct {
	View          string      `json:"view"`                    // 视图名称
	Data          gin.H       `json:"data"`                    // 命名数据
	Flash         string      `json:"flash,omitempty"`         // 一次性提示消息
	Notifications interface{} `json:"notifications,omitempty"` // 最近通知（每页注入）
}

// Render 渲染视图
// 自动合并flash消息与中间件注入的最近通知
func Render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	page := Page{
		View:  name,
		Data:  data,
		Flash: session.TakeFlash(c),
	}
	if notifications, exists := c.Get(ContextNotificationsKey); exists {
		page.Notifications = notifications
	}
	c.JSON(http.StatusOK, page)
}

// Redirect 302跳转指令
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// RedirectWithFlash 设置flash消息后跳转
func RedirectWithFlash(c *gin.Context, location, message string) {
	session.Flash(c, message)
	c.Redirect(http.StatusFound, location)
}

// NotFound 资源不存在，终止为404
func NotFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}
