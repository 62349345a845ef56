package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Query errors
	InvalidQueryError
	NoMatchError
	NotFoundError

	// Upstream errors
	UpstreamUnavailableError
	MalformedResponseError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError

	// Store errors
	StoreOpenError
	StoreMigrateError
	StoreQueryError
	StoreUpsertError
	StoreUnknownDriverError

	// Cache errors
	CacheOpenError
	CacheReadError
	CacheWriteError

	// Input/output errors
	InputNamesEmptyError
	OutputFormatError
)
