package middlewares

const (
	ctxAccountIDKey = "auth.accountID"
	ctxRoleKey      = "auth.role"

	CtxRequestID = "request_id"
)
