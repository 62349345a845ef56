package ioschema

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

func OpenError(driver, location string, err error) error {
	msg := "Cannot open %s species store at <em>%s</em>"
	vars := []any{driver, location}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open %s %s: %w", fn, driver, location, err),
	}
}

func MigrateSchemaError(err error) error {
	msg := "Cannot migrate species store schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: automigrate: %w", fn, err),
	}
}

func UnknownDriverError(driver string) error {
	msg := "Unknown store driver <em>%s</em>, use sqlite or postgres"
	vars := []any{driver}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreUnknownDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown driver %q", fn, driver),
	}
}
