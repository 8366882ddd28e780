package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

// 错误类别，随响应返回给调用方，保证机器可读
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindStore      = "store"
	KindAuth       = "unauthorized"
	KindInternal   = "internal"
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrCursorInvalid      = errors.New("游标无效")
	ErrContentTypeInvalid = errors.New("内容类型无效")
	ErrUserFollowSelf     = errors.New("用户不能关注自己")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrContentNotFound    = errors.New("内容不存在")
	ErrStoreUnavailable   = errors.New("数据服务异常，请稍后重试")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

// ErrorMeta 业务码与错误类别
type ErrorMeta struct {
	Code int
	Kind string
}

var ErrorMap = map[error]ErrorMeta{
	ErrParamInvalid:       {BadRequest, KindValidation},
	ErrCursorInvalid:      {BadRequest, KindValidation},
	ErrContentTypeInvalid: {BadRequest, KindValidation},
	ErrUserFollowSelf:     {BadRequest, KindValidation},
	ErrUserNotFound:       {NotFound, KindNotFound},
	ErrContentNotFound:    {NotFound, KindNotFound},
	ErrStoreUnavailable:   {InternalServerError, KindStore},
	UnauthorizedError:     {Unauthorized, KindAuth},
	UnExpectedError:       {InternalServerError, KindInternal},
}
