package svc

import "errors"

// ErrStorageInitFailed 错误：存储初始化失败
var ErrStorageInitFailed = errors.New("storage initialization failed")

// ErrNoCallReader 错误：没有可查询的调用日志 (sqlite or postgres)
var ErrNoCallReader = errors.New("no queryable call journal enabled")
