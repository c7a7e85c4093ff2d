package cli

import (
	"errors"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/quotes"
)

const (
	msgInvalidEmail    = "Invalid email format. Please try again."
	msgInvalidPassword = "Invalid password format. Password must be at least 8 characters long and contain at least one special character."
	msgUnknownUser     = "New user, please sign up first."
)

// describe turns a service error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidFormat) && errors.Is(err, common.ErrWeakPassword):
		return msgInvalidPassword
	case errors.Is(err, common.ErrInvalidFormat):
		return msgInvalidEmail
	case errors.Is(err, common.ErrDuplicateIdentifier):
		return "This email is already registered. Please log in or reset your password."
	case errors.Is(err, common.ErrNotFound):
		return "Email not found."
	case errors.Is(err, common.ErrWrongAnswer):
		return "Incorrect answer to the security question."
	case errors.Is(err, common.ErrWeakPassword):
		return "New password does not meet criteria."
	case errors.Is(err, common.ErrStoreUnavailable):
		return "User database not available. Please try again later."
	case errors.Is(err, quotes.ErrTickerNotFound):
		return "Failed to retrieve stock data. Please check the ticker symbol."
	case errors.Is(err, common.ErrQuoteUnavailable):
		return "Could not retrieve stock data."
	}
	return "Error: " + err.Error()
}
