package middleware

import (
	"context"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware tags every request with an id and threads the register
// identity defaults into the request context
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if types.GetStoreID(ctx) == "" {
		ctx = types.SetStoreID(ctx, types.DefaultStoreID)
	}
	if types.GetUserID(ctx) == "" {
		ctx = types.SetUserID(ctx, types.DefaultUserID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
