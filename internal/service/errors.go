package service

import "errors"

// 业务可预期的失败结果，handler 按这些映射状态码；
// 存储层的约束冲突在 service 边界翻译成这里的错误，不往外漏裸错误。
var (
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrCapacityExceeded       = errors.New("participant limit reached")
	ErrDuplicateApplication   = errors.New("application already exists")
	ErrDuplicateReport        = errors.New("report already exists")
	ErrAlreadyProcessed       = errors.New("application already processed")
	ErrNoApplication          = errors.New("no application for this opportunity")
	ErrApplicationNotApproved = errors.New("application is not approved")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrUniversityExists       = errors.New("university already exists")
	ErrSelfModeration         = errors.New("cannot moderate yourself")
	ErrLastAdmin              = errors.New("cannot demote the only active admin")
)
