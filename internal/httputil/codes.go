package httputil

// Machine-readable error codes returned next to the human message.
const (
	CodeInvalidRequestBody = "invalid_request_body"
	CodeMissingFields      = "missing_fields"
	CodeInvalidEmail       = "invalid_email"
	CodeUsernameTaken      = "username_taken"
	CodeEmailTaken         = "email_taken"
	CodeEmailNotFound      = "email_not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeMissingAuth        = "missing_authentication"
	CodeInvalidToken       = "invalid_token"
	CodeTokenRequired      = "token_required"
	CodeNotFound           = "not_found"
	CodeInternalError      = "internal_error"
)
