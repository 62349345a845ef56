package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

// CreateLogFileError is returned when gnfish.log cannot be opened for
// appending.
func CreateLogFileError(path string, err error) error {
	msg := "Cannot open gnfish log <em>%s</em>, " +
		"set log.destination to stderr to skip the file"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open log %s: %w", fn, path, err),
	}
}
