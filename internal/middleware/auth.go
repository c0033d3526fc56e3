package middleware

import (
  "fmt"
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/requestdata"
  "github.com/yungbote/goalpath-backend/internal/ssedata"
  "github.com/yungbote/goalpath-backend/internal/utils"
)

type AuthMiddleware struct {
  log    *logger.Logger
  secret []byte
}

func NewAuthMiddleware(log *logger.Logger) *AuthMiddleware {
  return &AuthMiddleware{
    log:    log.With("Middleware", "AuthMiddleware"),
    secret: []byte(utils.GetEnv("JWT_SECRET", "", nil)),
  }
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }

    userID, err := am.parseToken(tokenString)
    if err != nil {
      am.log.Debug("Token rejected", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
      return
    }

    ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
      TokenString: tokenString,
      UserID:      userID,
    })
    ctx = ssedata.WithSSEData(ctx)
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func (am *AuthMiddleware) parseToken(tokenString string) (uuid.UUID, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return am.secret, nil
  })
  if err != nil {
    return uuid.Nil, err
  }
  if !token.Valid {
    return uuid.Nil, fmt.Errorf("token invalid")
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok {
    return uuid.Nil, fmt.Errorf("unexpected claims type")
  }
  sub, err := claims.GetSubject()
  if err != nil || sub == "" {
    return uuid.Nil, fmt.Errorf("missing subject")
  }
  return uuid.Parse(sub)
}

// SSE connections from EventSource cannot set headers, so the token may
// arrive as a query parameter instead.
func extractToken(c *gin.Context) string {
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
