package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrStartAlreadySet   = NewErrno(codes.Code(1101), errors.New("写作开始时间已记录，不能重复开始"))
	ErrEssayAuthorized   = NewErrno(codes.Code(1102), errors.New("作文已定稿，不能再修改"))
	ErrNotCorrector      = NewErrno(codes.Code(1103), errors.New("当前用户不是该作文的批改人"))
	ErrStitchNotAllowed  = NewErrno(codes.Code(1104), errors.New("当前用户没有缝合裁决权限"))
	ErrStitchNotRequired = NewErrno(codes.Code(1105), errors.New("该作文无需缝合裁决"))
	ErrStitchSave        = NewErrno(codes.Code(1106), errors.New("保存缝合裁决失败，请重试"))
	ErrItemFinalized     = NewErrno(codes.Code(1107), errors.New("该作文批改已定案"))
	ErrGetCriteria       = NewErrno(codes.Code(1108), errors.New("获取评分标准失败"))
	ErrGetGradeLevels    = NewErrno(codes.Code(1109), errors.New("获取等级方案失败"))
	ErrResourceSign      = NewErrno(codes.Code(1110), errors.New("生成资源下载链接失败，请重试"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("参数错误"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("调用接口失败，请重试"))
	ErrOneStitch     = NewErrno(codes.Code(3001), errors.New("同一时刻仅可以提交一份缝合裁决，请稍后重试"))
)

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("无效的id "))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("更新失败"))
)
