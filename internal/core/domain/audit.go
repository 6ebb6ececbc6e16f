package domain

import "time"

// AuthEventType enumerates the auditable authentication outcomes.
type AuthEventType string

const (
	AuditSignup       AuthEventType = "signup"
	AuditLoginSuccess AuthEventType = "login_success"
	AuditLoginFailure AuthEventType = "login_failure"
)

// AuthEvent is one entry in the authentication audit trail. SubjectKey is the
// normalized login key; SubjectID is empty when the account does not exist.
type AuthEvent struct {
	Type       AuthEventType
	SubjectKey string
	SubjectID  string
	Timestamp  time.Time
}
