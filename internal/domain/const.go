package domain

// Context keys set by the auth middleware.
const (
	SessionCtxKey   = "pt-session"
	RequesterCtxKey = "pt-requester"
)
