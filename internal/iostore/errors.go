package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

func QueryError(name string, err error) error {
	msg := "Cannot query species store for <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %q: %w", fn, name, err),
	}
}

func UpsertError(name string, err error) error {
	msg := "Cannot save <em>%s</em> to species store"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreUpsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: upsert %q: %w", fn, name, err),
	}
}
