// ABOUTME: Error taxonomy for per-platform publish failures.
// ABOUTME: Typed errors keep the user-facing message while matching sentinels via errors.Is.
package platform

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match them with errors.Is.
var (
	ErrTokenMissing        = errors.New("token missing")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidToken        = errors.New("invalid token")
	ErrPublishFailed       = errors.New("publish failed")
	ErrNoPublicationFound  = errors.New("no publication found")
)

// TokenMissingError is returned when no credential is stored for a platform.
type TokenMissingError struct {
	Platform string
}

func (e TokenMissingError) Error() string {
	return fmt.Sprintf("Token missing for platform: %s. Use setPlatformToken first.", e.Platform)
}

// Is reports whether target is ErrTokenMissing.
func (e TokenMissingError) Is(target error) bool { return target == ErrTokenMissing }

// UnsupportedPlatformError is returned for identifiers outside the registry's known set.
type UnsupportedPlatformError struct {
	Platform string
}

func (e UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("Unsupported platform: %s", e.Platform)
}

// Is reports whether target is ErrUnsupportedPlatform.
func (e UnsupportedPlatformError) Is(target error) bool { return target == ErrUnsupportedPlatform }

// InvalidTokenError is returned when an adapter's validation rejects the token.
type InvalidTokenError struct {
	Platform string
}

func (e InvalidTokenError) Error() string { return "Invalid token" }

// Is reports whether target is ErrInvalidToken.
func (e InvalidTokenError) Is(target error) bool { return target == ErrInvalidToken }

// PublishError describes a failed step of an adapter's publish protocol.
type PublishError struct {
	Platform string // platform identifier, e.g. "devto"
	Service  string // display name used in messages, e.g. "DEV.to"
	Step     string // remote call that failed, e.g. "createDraft"
	Status   int    // upstream HTTP status, 0 when none was received
	Detail   string // upstream message or body text
	Err      error  // underlying cause, if any
}

func (e *PublishError) Error() string {
	name := e.Service
	if name == "" {
		name = e.Platform
	}
	msg := fmt.Sprintf("%s %s failed:", name, e.Step)
	if e.Status != 0 {
		msg += fmt.Sprintf(" %d", e.Status)
	}
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	switch {
	case e.Err != nil && e.Detail == "":
		msg += " " + e.Err.Error()
	case e.Err != nil:
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *PublishError) Unwrap() error { return e.Err }

// Is reports whether target is ErrPublishFailed.
func (e *PublishError) Is(target error) bool { return target == ErrPublishFailed }
