package usercontext

// Session and Locals keys shared between the auth controller, which writes
// them on login, and the user context middleware, which reads them back.
const (
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyIsAdmin       = "isAdmin"
	KeyFromProtected = "from_protected"
)
