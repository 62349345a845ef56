package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

func inputNamesEmptyError() error {
	msg := "No names to resolve. Give names as arguments or use <em>--file</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputNamesEmptyError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("empty input")),
	}
}

func outputFormatError(format string) error {
	msg := "Unknown output format <em>%s</em>, use pretty, compact or yaml"
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format %q", fn, format),
	}
}
