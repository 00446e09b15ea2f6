package corrector

import (
	"context"

	"essay-assess/biz/adaptor"
	dto "essay-assess/biz/application/dto/assess/corrector"
	"essay-assess/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// GetData 批改端初始化数据
func GetData(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.CorrectionService.GetData(adaptor.InjectContext(ctx, c))
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// GetItem 获取一篇作文的批改数据
func GetItem(ctx context.Context, c *app.RequestContext) {
	key := c.Param("key")
	p := provider.Get()
	resp, err := p.CorrectionService.GetItem(adaptor.InjectContext(ctx, c), key)
	adaptor.PostProcess(ctx, c, key, resp, err)
}

// PutChanges 提交批注、评分、总评与偏好变更
func PutChanges(ctx context.Context, c *app.RequestContext) {
	var req dto.PutChangesReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.CorrectionService.PutChanges(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PutStitch 提交缝合裁决
func PutStitch(ctx context.Context, c *app.RequestContext) {
	var req dto.PutStitchReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	key := c.Param("key")
	p := provider.Get()
	resp, err := p.CorrectionService.PutStitchDecision(adaptor.InjectContext(ctx, c), key, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetFile 获取任务资源下载地址
func GetFile(ctx context.Context, c *app.RequestContext) {
	key := c.Param("key")
	p := provider.Get()
	resp, err := p.CorrectionService.GetFile(adaptor.InjectContext(ctx, c), key)
	adaptor.PostProcess(ctx, c, key, resp, err)
}
