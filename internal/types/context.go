package types

import "context"

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxStoreID   ContextKey = "ctx_store_id"

	// Default values
	DefaultStoreID = "store_main"
	DefaultUserID  = "00000000-0000-0000-0000-000000000000"
)

// HTTP headers echoed on every response
const (
	HeaderRequestID = "X-Request-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetStoreID(ctx context.Context) string {
	if storeID, ok := ctx.Value(CtxStoreID).(string); ok {
		return storeID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetStoreID sets the store ID in the context
func SetStoreID(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, CtxStoreID, storeID)
}
