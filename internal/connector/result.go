package connector

import (
	"errors"

	"github.com/danmuck/reportctl/internal/protocol/wire"
	"github.com/danmuck/reportctl/internal/report"
)

// ExitCode maps a Submit result onto the numeric caller convention:
// a non-negative value is the receiver's answer code, -1 is an
// operational or transport failure, -2 is a field over its byte
// ceiling.
func ExitCode(code wire.AnswerCode, err error) int {
	if err == nil {
		return int(code)
	}
	var limitErr *report.FieldLimitError
	if errors.As(err, &limitErr) {
		return -2
	}
	return -1
}
