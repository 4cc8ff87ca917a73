package utils

import (
	"strconv"

	"foodhub/pkg/authz"

	"github.com/gin-gonic/gin"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CurrentIdentity: ไม่ได้ login ได้ Identity ว่าง (Anonymous)
func CurrentIdentity(c *gin.Context) authz.Identity {
	return authz.Identity{UserID: CurrentUserID(c), Role: CurrentRole(c)}
}

// ParamUint อ่าน path param เป็นเลข id; ไม่ใช่ตัวเลขได้ false
func ParamUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func QueryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return n
}
