package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys shared across the codebase.
const (
	KeyOperation = "operation"
	KeyService   = "service"
	KeyAccount   = "account"
	KeyUser      = "user"
	KeyCalendar  = "calendar"
	KeyPage      = "page"
	KeyItems     = "items"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyTool      = "tool"
)

// Status values. Kept in sync with the instrumentation package, which imports
// this one.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(Operation(operation))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(Service(service))
}

// WithAccount returns a logger with the account attribute set.
func WithAccount(logger *slog.Logger, account string) *slog.Logger {
	return logger.With(Account(account))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(Tool(tool))
}

func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
func Service(svc string) slog.Attr { return slog.String(KeyService, svc) }
func Account(account string) slog.Attr { return slog.String(KeyAccount, account) }
func Calendar(calendarID string) slog.Attr { return slog.String(KeyCalendar, AnonymizeEmail(calendarID)) }
func Tool(tool string) slog.Attr { return slog.String(KeyTool, tool) }
func Status(status string) slog.Attr { return slog.String(KeyStatus, status) }
func Page(n int) slog.Attr { return slog.Int(KeyPage, n) }
func Items(n int) slog.Attr { return slog.Int(KeyItems, n) }

// User returns an attribute for a Gmail user ID. Email addresses are hashed;
// the special value "me" is logged as is.
func User(userID string) slog.Attr {
	return slog.String(KeyUser, AnonymizeEmail(userID))
}

// Err returns an attribute for err. A nil error yields an empty group, which
// slog drops from the output.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a stable hash for values that look like email
// addresses. Other values are returned unchanged.
func AnonymizeEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		return email
	}
	hash := sha256.Sum256([]byte(email))
	return "user:" + hex.EncodeToString(hash[:8])
}

// SanitizeToken returns a length indicator for a credential without exposing
// any of its content.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
