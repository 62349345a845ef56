package ioupstream

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

func UpstreamUnavailableError(service, url string, status int, err error) error {
	msg := "Service <em>%s</em> is unavailable"
	vars := []any{service}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UpstreamUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s request %s failed (status %d): %w",
			fn, service, url, status, err),
	}
}

func MalformedResponseError(service, url string, err error) error {
	msg := "Service <em>%s</em> returned unexpected data"
	vars := []any{service}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MalformedResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s response from %s: %w",
			fn, service, url, err),
	}
}
