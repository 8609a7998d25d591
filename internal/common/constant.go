package common

// SessionCookieName is the backend-issued HTTP-only session cookie. The client
// never reads it; the name is only used by the mock backend and the routing
// guard that checks for its presence.
const SessionCookieName = "auth_token"

// RequestIDHeaderName carries a per-request correlation id on outbound calls.
const RequestIDHeaderName = "X-Request-ID"

// SessionExpiredReason is attached to the sign-in redirect after a 401.
const SessionExpiredReason = "session-expired"
