package errors

var (
	ErrUnknown               = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument       = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound              = New(ERR_NOT_FOUND, "not found")
	ErrProcessing            = New(ERR_PROCESSING, "error processing")
	ErrConfiguration         = New(ERR_CONFIGURATION, "configuration error")
	ErrContext               = New(ERR_CONTEXT, "context error")
	ErrError                 = New(ERR_ERROR, "generic error")
	ErrUnsupported           = New(ERR_UNSUPPORTED, "not support")
	ErrTxNotFound            = New(ERR_TX_NOT_FOUND, "tx not found")
	ErrTxInvalid             = New(ERR_TX_INVALID, "tx invalid")
	ErrTxAlreadyExists       = New(ERR_TX_ALREADY_EXISTS, "tx already exists")
	ErrTxMalformed           = New(ERR_TX_MALFORMED, "tx malformed")
	ErrTxMissingInput        = New(ERR_TX_MISSING_INPUT, "missing input")
	ErrTxScriptVerification  = New(ERR_TX_SCRIPT_VERIFICATION, "verifyTx failed")
	ErrServiceError          = New(ERR_SERVICE_ERROR, "service error")
	ErrStorageUnavailable    = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError          = New(ERR_STORAGE_ERROR, "storage error")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewUnsupportedError(message string, params ...interface{}) error {
	return New(ERR_UNSUPPORTED, message, params...)
}
func NewTxNotFoundError(message string, params ...interface{}) error {
	return New(ERR_TX_NOT_FOUND, message, params...)
}
func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}
func NewTxAlreadyExistsError(message string, params ...interface{}) error {
	return New(ERR_TX_ALREADY_EXISTS, message, params...)
}
func NewTxMalformedError(message string, params ...interface{}) error {
	return New(ERR_TX_MALFORMED, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
