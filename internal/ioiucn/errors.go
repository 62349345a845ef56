package ioiucn

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

func NotBinomialError(name string) error {
	msg := "Name <em>%s</em> is not a binomial"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NoMatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: need genus and species in %q", fn, name),
	}
}

func NoTokenError() error {
	msg := "IUCN token is not configured"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UpstreamUnavailableError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("empty iucn.token")),
	}
}

func NoAssessmentError(name string) error {
	msg := "No IUCN assessments for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NoMatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty assessments for %q", fn, name),
	}
}

func MissingFieldError(name, field string) error {
	msg := "IUCN data for <em>%s</em> misses <em>%s</em>"
	vars := []any{name, field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MalformedResponseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: field %s is missing for %q", fn, field, name),
	}
}
