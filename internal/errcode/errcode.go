package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：用户可修正的问题（例如生成所需信息缺失）
// - 5xxx：系统错误（上游失败、导出失败）
const (
	OK                 = 0
	GenerationPending  = 4009
	MissingInformation = 4022
	SystemError        = 5000
	GenerationFailed   = 5002
	ExportFailed       = 5003
)
