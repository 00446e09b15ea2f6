package util

import (
	"encoding/json"
	"essay-assess/biz/application/dto/basic"
)

// JSONF 序列化为json字符串，用于日志输出
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func Succeed(msg string) (*basic.Response, error) {
	return &basic.Response{
		Code: 0,
		Msg:  msg,
	}, nil
}

func Fail(code int64, msg string) *basic.Response {
	return &basic.Response{
		Code: code,
		Msg:  msg,
	}
}
