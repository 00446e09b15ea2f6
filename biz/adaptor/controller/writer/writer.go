package writer

import (
	"context"

	"essay-assess/biz/adaptor"
	dto "essay-assess/biz/application/dto/assess/writer"
	"essay-assess/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// GetData 写作端初始化数据
func GetData(ctx context.Context, c *app.RequestContext) {
	var req dto.GetDataReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.WritingService.GetData(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetUpdate 写作中的轻量刷新
func GetUpdate(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.WritingService.GetUpdate(adaptor.InjectContext(ctx, c))
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// PutStart 记录写作开始时间
func PutStart(ctx context.Context, c *app.RequestContext) {
	var req dto.PutStartReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.WritingService.PutStart(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PutSteps 提交一批编辑记录
func PutSteps(ctx context.Context, c *app.RequestContext) {
	var req dto.PutStepsReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.WritingService.PutSteps(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PutChanges 提交便签与偏好变更
func PutChanges(ctx context.Context, c *app.RequestContext) {
	var req dto.PutChangesReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.WritingService.PutChanges(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PutFinal 提交定稿
func PutFinal(ctx context.Context, c *app.RequestContext) {
	var req dto.PutFinalReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.WritingService.PutFinal(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetFile 获取任务资源下载地址
func GetFile(ctx context.Context, c *app.RequestContext) {
	key := c.Param("key")
	p := provider.Get()
	resp, err := p.WritingService.GetFile(adaptor.InjectContext(ctx, c), key)
	adaptor.PostProcess(ctx, c, key, resp, err)
}
