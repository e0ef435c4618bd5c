package actor

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
)

// 生命周期错误，调用方可用 errors.Is 判断
var (
	ErrParentNotFound      = errs.ErrParentNotFound
	ErrActorNotFound       = errs.ErrActorNotFound
	ErrActorAlreadyStarted = errs.ErrActorAlreadyStarted
	ErrInstanceWrongType   = errs.ErrInstanceWrongType
	ErrInstanceBorrowed    = errs.ErrInstanceBorrowed
	ErrSystemUnavailable   = errs.ErrSystemUnavailable
	ErrSystemStillInUse    = errs.ErrSystemStillInUse
	ErrAlreadyRunning      = errs.ErrAlreadyRunning
	ErrFamilyMismatch      = errs.ErrFamilyMismatch
	ErrVoidProcessed       = errs.ErrVoidProcessed
)
