package errors

const (
	CodeConfigNotFound = "CONFIG_NOT_FOUND"
	CodeStageOrder     = "STAGE_ORDER"
)

// CodedError lets callers branch on a stable code instead of matching
// error strings.
type CodedError interface {
	Code() string
}

type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string {
	return e.msg
}

func (e *codedError) Code() string {
	return e.code
}

// ConfigNotFound means no workbench.yaml was found in the project directory
// or any of its parents.
func ConfigNotFound(msg string) error {
	return &codedError{
		code: CodeConfigNotFound,
		msg:  msg,
	}
}

// StageOrder means the provisioning pipeline's stage sequence is invalid: a
// stage requires something no earlier stage provides.
func StageOrder(msg string) error {
	return &codedError{
		code: CodeStageOrder,
		msg:  msg,
	}
}

func IsConfigNotFound(err error) bool {
	return Code(err) == CodeConfigNotFound
}

func IsStageOrder(err error) bool {
	return Code(err) == CodeStageOrder
}

// Code returns the error code, or the empty string.
func Code(err error) string {
	if cerr, ok := err.(CodedError); ok {
		return cerr.Code()
	}
	return ""
}
