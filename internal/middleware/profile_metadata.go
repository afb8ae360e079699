package middleware

import (
  "github.com/gin-gonic/gin"

  "github.com/cafeoi/cafeoi-backend/internal/requestdata"
)

const (
  HeaderEmail    = "x-cafeoi-email"
  HeaderFullName = "x-cafeoi-name"
  HeaderPlan     = "x-cafeoi-plan"
)

// ProfileMetadata resolves the requester identity from the optional
// x-cafeoi-* headers and stores it on the request context. Absent headers
// fall back to the fixed demo identity.
func ProfileMetadata() gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := requestdata.Default()
    if v := c.GetHeader(HeaderEmail); v != "" {
      rd.Email = v
    }
    if v := c.GetHeader(HeaderFullName); v != "" {
      rd.FullName = v
    }
    if v := c.GetHeader(HeaderPlan); v != "" {
      rd.PlanOverride = v
    }
    ctx := requestdata.WithRequestData(c.Request.Context(), rd)
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}
