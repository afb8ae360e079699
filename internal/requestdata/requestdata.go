package requestdata

import (
  "context"
)

// Fallback identity used when the client sends no metadata headers.
const (
  DefaultEmail    = "demo@cafeoi.local"
  DefaultFullName = "Cafeoi Demo"
)

var requestDataKey = struct{}{}

// RequestData is the requester identity resolved from the metadata headers.
// The values are client-supplied and unauthenticated.
type RequestData struct {
  Email        string
  FullName     string
  PlanOverride string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// Default returns the fallback demo identity.
func Default() *RequestData {
  return &RequestData{Email: DefaultEmail, FullName: DefaultFullName}
}
