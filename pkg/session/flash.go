package session

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

// flash消息保存在独立的一次性Cookie中
// 未登录流程（注册后跳转登录页）同样可用
const flashCookieName = "blog_flash"

// Flash 设置一次性提示消息，随下一次渲染返回
func Flash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, url.QueryEscape(message), 300, "/", "", false, true)
}

// TakeFlash 读取并清除提示消息，没有则返回空串
func TakeFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
