package species

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnfish/pkg/errcode"
)

func InvalidQueryError(raw string) error {
	msg := "Query <em>'%s'</em> is empty"
	vars := []any{raw}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty query", fn),
	}
}

func NoMatchError(query string, candidates int) error {
	msg := "No fish taxon matches <em>%s</em>"
	vars := []any{query}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NoMatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no usable candidate among %d for %q",
			fn, candidates, query),
	}
}

func NotFoundError(query string, err error) error {
	msg := "Species <em>%s</em> not found. %s"
	vars := []any{query, NotFoundSuggestion}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	if err == nil {
		err = errors.New("no candidates")
	}
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: species %q not found: %w", fn, query, err),
	}
}

// ErrCode returns the code of a gn.Error anywhere in the chain, or
// errcode.UnknownError.
func ErrCode(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}

// IsCode checks if err is a gn.Error with the given code.
func IsCode(err error, code gn.ErrorCode) bool {
	return err != nil && ErrCode(err) == code
}
