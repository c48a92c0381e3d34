package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comex-tools/comex-app/utils"
)

// AuthMiddleware validates the Bearer token and puts user_id and role into
// the request context. The token may also come in via ?token= for clients
// that cannot set headers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("formato de token inválido"))
				c.Abort()
				return
			}
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token não informado"))
			c.Abort()
			return
		}
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token sem identificação de usuário"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
