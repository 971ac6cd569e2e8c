package middleware

import (
	"github.com/gin-gonic/gin"

	jwtutil "timeblessed/backend/app/jwt"
)

func GetClaims(c *gin.Context) *jwtutil.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*jwtutil.Claims); ok {
			return claims
		}
	}
	return nil
}
