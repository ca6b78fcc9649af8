// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Signup Constraints

const (
	// MaxUsernameLength bounds the username column.
	MaxUsernameLength = 150

	// MaxEmailLength bounds the email column (RFC 5321 practical limit).
	MaxEmailLength = 254

	// MaxNameLength bounds the first/last name columns.
	MaxNameLength = 150

	// ConfirmationSubject is the subject line of the code-dispatch email.
	ConfirmationSubject = "Your Revora confirmation code"

	// cooldownKeyPrefix namespaces the per-email dispatch cooldown in Redis.
	cooldownKeyPrefix = "auth:signup_cooldown:"
)
