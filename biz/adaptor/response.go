package adaptor

import (
	"context"
	"essay-assess/biz/application/dto/basic"
	"essay-assess/biz/infrastructure/util"
	"essay-assess/biz/infrastructure/util/log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"google.golang.org/grpc/status"
)

// PostProcess 统一处理响应与错误
// 业务错误通过Errno的GRPCStatus映射成code/msg，HTTP层保持200
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "request=%s, resp=%s, err=%v", util.JSONF(req), util.JSONF(resp), err)

	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	s, _ := status.FromError(err)
	c.JSON(http.StatusOK, &basic.Response{
		Code: int64(s.Code()),
		Msg:  s.Message(),
	})
}
