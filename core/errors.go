package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX，按 Code 比较），errors.Is 精确匹配到具体哨兵错误
//
// 使用场景：
//   - Store 错误：NOT_FOUND
//   - 推荐调用约定错误：INVALID_INPUT（N <= 0）、NOT_FOUND（未知用户调用打分器）
//   - 服务状态错误：UNAVAILABLE（快照尚未发布）
//   - 参考数据错误：INVALID_INPUT（NaN 评分、非法相似度）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "matrix", "recall"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 让 errors.Is 能够穿透 fmt.Errorf("%w") 包装，按 Module + Code + Message 匹配，
// 同模块同错误码的不同哨兵错误互不相等；只关心错误码时用 IsXXX。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code && e.Message == t.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError（支持包装链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	for err != nil {
		if domainErr, ok := err.(*DomainError); ok {
			return domainErr
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 服务不可用（例如快照尚未发布）
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleMatrix    = "matrix"    // 评分矩阵 / 相似用户表
	ModuleRecall    = "recall"    // 召回（打分）模块
	ModuleRecommend = "recommend" // 推荐编排模块
)

var (
	// ErrUserNotFound 表示对评分矩阵中不存在的用户调用了 CF 打分器（调用方需先做冷启动判断）
	ErrUserNotFound = NewDomainError(ModuleRecall, ErrorCodeNotFound, "recall: user not present in rating matrix")

	// ErrSnapshotUnavailable 表示还没有发布任何参考数据快照
	ErrSnapshotUnavailable = NewDomainError(ModuleRecommend, ErrorCodeUnavailable, "recommend: no reference snapshot published")

	// ErrInvalidCount 表示请求的推荐数量 N <= 0
	ErrInvalidCount = NewDomainError(ModuleRecommend, ErrorCodeInvalidInput, "recommend: requested count must be positive")

	// ErrInvalidRating 表示评分值为 NaN / Inf
	ErrInvalidRating = NewDomainError(ModuleMatrix, ErrorCodeInvalidInput, "matrix: rating must be a finite number")

	// ErrInvalidSimilarity 表示相似度为 NaN / Inf
	ErrInvalidSimilarity = NewDomainError(ModuleMatrix, ErrorCodeInvalidInput, "matrix: similarity must be a finite number")
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}
