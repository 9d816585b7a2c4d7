package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidationFailed is matched by every [ValidationErrors] value.
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError describes one failed rule for one input field.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ValidationErrors collects every failed rule of a single validation run,
// in the order the rules were checked.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Param+": "+e.Msg)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationErrors.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}
