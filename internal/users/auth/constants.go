// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Confirmation Mail

const (
	// ConfirmationSubject is the subject line of the signup message.
	ConfirmationSubject = `"YAMDB". Registration confirmation`

	// confirmationBody is formatted with the username and the plaintext code.
	confirmationBody = "Username: %s, confirmation_code: %s"

	// MsgCheckConfirmationCode is reported when a code does not match.
	MsgCheckConfirmationCode = "Check your confirmation_code"
)
