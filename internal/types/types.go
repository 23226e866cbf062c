package types

// UserCtxName is the Fiber locals key the auth middleware stores the
// authenticated user under.
const UserCtxName = "user"

// UserContext is the viewer identity resolved by the gateway. Session
// issuance and validation live outside this service.
type UserContext struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
