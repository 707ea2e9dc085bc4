// Package types 定义服务层共享的类型和错误
package types

import "errors"

// 服务层错误类别，处理器用 errors.Is 映射到 HTTP 状态码
var (
	// ErrNotFound 目标不存在或已软删除
	ErrNotFound = errors.New("not found")
	// ErrValidation 请求负载校验失败，未触发任何仓库调用
	ErrValidation = errors.New("validation failed")
	// ErrConflict 存储层完整性约束冲突（外键、唯一键），事务已整体回滚
	ErrConflict = errors.New("conflict")
)
