package repository

import (
	"errors"

	"github.com/aws/smithy-go"
)

// isAPIErrorCode verifica o código de erro smithy APIError, inclusive quando
// o erro está embrulhado com %w.
func isAPIErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
