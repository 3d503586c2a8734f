package errors

import "errors"

// ErrStoreFailure 持久化调用失败：向用户透出，本地工作数据保留，
// 由用户手动重试保存
var ErrStoreFailure = errors.New("存储服务暂不可用，本次修改已保留在本地，请稍后重试保存")
