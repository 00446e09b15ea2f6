package service

import (
	"context"
	"time"

	"essay-assess/biz/adaptor"
	"essay-assess/biz/application/dto/assess/writer"
	"essay-assess/biz/application/dto/basic"
	"essay-assess/biz/infrastructure/cache"
	"essay-assess/biz/infrastructure/consts"
	"essay-assess/biz/infrastructure/repository/correction"
	"essay-assess/biz/infrastructure/repository/essay"
	"essay-assess/biz/infrastructure/repository/task"
	"essay-assess/biz/infrastructure/repository/writing"
	"essay-assess/biz/infrastructure/util"
	"essay-assess/biz/infrastructure/util/log"
	"essay-assess/biz/infrastructure/util/reconcile"
	"essay-assess/biz/infrastructure/util/textproc"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

type IWritingService interface {
	GetData(ctx context.Context, req *writer.GetDataReq) (*writer.GetDataResp, error)
	GetUpdate(ctx context.Context) (*writer.GetUpdateResp, error)
	PutStart(ctx context.Context, req *writer.PutStartReq) (*basic.Response, error)
	PutSteps(ctx context.Context, req *writer.PutStepsReq) (*writer.PutStepsResp, error)
	PutChanges(ctx context.Context, req *writer.PutChangesReq) (*writer.PutChangesResp, error)
	PutFinal(ctx context.Context, req *writer.PutFinalReq) (*writer.PutStepsResp, error)
	GetFile(ctx context.Context, key string) (*writer.GetFileResp, error)
}

type WritingService struct {
	TaskMapper        task.IMongoMapper
	ResourceMapper    task.IResourceMongoMapper
	ItemMapper        correction.IItemMongoMapper
	EssayMapper       essay.IMongoMapper
	StepMapper        essay.IStepMongoMapper
	NoteMapper        writing.INoteMongoMapper
	PreferencesMapper writing.IPreferencesMongoMapper
	TextCache         cache.IProcessedTextCacheMapper
}

var WritingServiceSet = wire.NewSet(
	wire.Struct(new(WritingService), "*"),
	wire.Bind(new(IWritingService), new(*WritingService)),
)

// GetData 写作端打开时一次性拉取全部数据
func (s *WritingService) GetData(ctx context.Context, _ *writer.GetDataReq) (*writer.GetDataResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		log.CtxError(ctx, "获取作文单元失败: %v", err)
		return nil, consts.ErrNotFound
	}

	t, err := s.TaskMapper.FindOneByKey(ctx, item.TaskKey)
	if err != nil {
		log.CtxError(ctx, "获取写作任务失败: %v", err)
		return nil, consts.ErrNotFound
	}

	e, err := s.EssayMapper.FindOrCreateByItemKey(ctx, item.Key, item.WriterKey)
	if err != nil {
		return nil, err
	}

	notes, err := s.NoteMapper.FindByItemKey(ctx, item.Key)
	if err != nil {
		return nil, err
	}

	// 偏好不存在时用默认值
	prefs := &writing.Preferences{InstructionsZoom: 1, EditorZoom: 1}
	if p, err := s.PreferencesMapper.FindOne(ctx, item.WriterKey); err == nil {
		prefs = p
	}

	resources, err := s.ResourceMapper.FindByTaskKey(ctx, item.TaskKey)
	if err != nil {
		return nil, err
	}

	resp := &writer.GetDataResp{
		Task: writer.TaskInfo{
			Title:        t.Title,
			Instructions: t.Instructions,
			WriterName:   t.WriterName,
			WritingEnd:   t.WritingEnd,
		},
		Preferences: writer.Preferences{
			InstructionsZoom: prefs.InstructionsZoom,
			EditorZoom:       prefs.EditorZoom,
		},
		Essay: writer.EssayInfo{
			Content:    e.WrittenText,
			Hash:       e.WrittenHash,
			Started:    e.EditStarted,
			Authorized: e.IsAuthorized,
		},
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, writer.NoteInfo{
			NoteNo:     n.NoteNo,
			NoteText:   n.NoteText,
			LastChange: n.LastChange,
		})
	}
	for _, r := range resources {
		resp.Resources = append(resp.Resources, writer.ResourceInfo{
			Key:      r.Key,
			Title:    r.Title,
			Type:     r.Type,
			Source:   r.Source,
			Mimetype: r.Mimetype,
			Size:     r.Size,
		})
	}
	return resp, nil
}

// GetUpdate 写作过程中的轻量刷新
// 截止时间等任务信息可能被宿主调整，客户端周期性拉取
func (s *WritingService) GetUpdate(ctx context.Context) (*writer.GetUpdateResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		return nil, consts.ErrNotFound
	}
	t, err := s.TaskMapper.FindOneByKey(ctx, item.TaskKey)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	return &writer.GetUpdateResp{
		Task: writer.TaskInfo{
			Title:        t.Title,
			Instructions: t.Instructions,
			WriterName:   t.WriterName,
			WritingEnd:   t.WritingEnd,
		},
		Alerts: []writer.AlertInfo{},
	}, nil
}

// PutStart 记录写作开始时间，只允许记录一次
func (s *WritingService) PutStart(ctx context.Context, req *writer.PutStartReq) (*basic.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		return nil, consts.ErrNotFound
	}
	e, err := s.EssayMapper.FindOrCreateByItemKey(ctx, item.Key, item.WriterKey)
	if err != nil {
		return nil, err
	}

	if e.State() == essay.StateAuthorized {
		return nil, consts.ErrEssayAuthorized
	}
	if e.EditStarted > 0 {
		return nil, consts.ErrStartAlreadySet
	}

	started := time.Now().Unix()
	if req.Started != nil && *req.Started > 0 {
		started = *req.Started
	}
	updated := e.WithEditStarted(started)
	if err := s.EssayMapper.Save(ctx, &updated); err != nil {
		return nil, consts.ErrUpdate
	}
	return util.Succeed("写作开始时间已记录")
}

// PutSteps 核对并保存一批编辑记录
// 已定稿的作文静默忽略后续记录，返回接受数0
func (s *WritingService) PutSteps(ctx context.Context, req *writer.PutStepsReq) (*writer.PutStepsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		return nil, consts.ErrNotFound
	}
	e, err := s.EssayMapper.FindOrCreateByItemKey(ctx, item.Key, item.WriterKey)
	if err != nil {
		return nil, err
	}
	if e.IsAuthorized {
		return &writer.PutStepsResp{}, nil
	}

	res, err := s.reconcileSteps(ctx, e, req.Steps)
	if err != nil {
		return nil, err
	}

	if len(res.Accepted) > 0 {
		updated := e.WithWrittenText(res.Text).WithWrittenHash(res.Hash).WithEditEnded(res.EndedAt)
		if e.EditStarted == 0 {
			// 没有显式开始就提交记录时，以第一条记录的时间为准
			updated = updated.WithEditStarted(res.Accepted[0].Timestamp)
		}
		if err := s.EssayMapper.Save(ctx, &updated); err != nil {
			return nil, consts.ErrUpdate
		}
	}
	return &writer.PutStepsResp{Accepted: int64(len(res.Accepted))}, nil
}

// reconcileSteps 核对记录并把接受的部分落库
func (s *WritingService) reconcileSteps(ctx context.Context, e *essay.WrittenEssay, steps []writer.WritingStep) (*reconcile.Result, error) {
	var candidates []reconcile.Step
	if err := copier.Copy(&candidates, &steps); err != nil {
		return nil, consts.ErrInvalidParams
	}

	res := reconcile.Run(e.WrittenText, e.WrittenHash, candidates, func(hashAfter string) bool {
		has, err := s.StepMapper.HasByHashAfter(ctx, e.ItemKey, hashAfter)
		if err != nil {
			log.CtxError(ctx, "查询编辑记录失败: %v", err)
			return false
		}
		return has
	})

	var accepted []*essay.WritingStep
	for _, step := range res.Accepted {
		accepted = append(accepted, &essay.WritingStep{
			ItemKey:    e.ItemKey,
			Timestamp:  step.Timestamp,
			Content:    step.Content,
			IsDelta:    step.IsDelta,
			HashBefore: step.HashBefore,
			HashAfter:  step.HashAfter,
		})
	}
	if err := s.StepMapper.Append(ctx, accepted); err != nil {
		return nil, consts.ErrUpdate
	}
	return &res, nil
}

// PutChanges 保存客户端缓冲的便签与偏好变更
// 返回的map中出现的key表示该条已接受，未出现的由客户端稍后重发
func (s *WritingService) PutChanges(ctx context.Context, req *writer.PutChangesReq) (*writer.PutChangesResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		return nil, consts.ErrNotFound
	}
	t, err := s.TaskMapper.FindOneByKey(ctx, item.TaskKey)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	e, err := s.EssayMapper.FindOrCreateByItemKey(ctx, item.Key, item.WriterKey)
	if err != nil {
		return nil, err
	}

	resp := &writer.PutChangesResp{
		Notes:       map[string]*string{},
		Preferences: map[string]*string{},
	}

	// 定稿后或写作截止后整批拒绝，客户端据此停止重发
	if e.IsAuthorized || (t.WritingEnd > 0 && time.Now().Unix() > t.WritingEnd) {
		return resp, nil
	}

	for _, entry := range req.Notes {
		if entry.ItemKey != item.Key {
			continue
		}
		n := &writing.Note{
			ItemKey:    item.Key,
			NoteNo:     cast.ToInt(entry.Payload["note_no"]),
			LastChange: entry.ServerTime,
		}
		if entry.Action != consts.ActionDelete {
			if v, ok := entry.Payload["note_text"]; ok && v != nil {
				text := cast.ToString(v)
				n.NoteText = &text
			}
		}
		if err := s.NoteMapper.Save(ctx, n); err != nil {
			log.CtxError(ctx, "保存便签失败, key=%s: %v", entry.Key, err)
			continue
		}
		if entry.Action == consts.ActionDelete {
			resp.Notes[entry.Key] = nil
		} else {
			key := entry.Key
			resp.Notes[entry.Key] = &key
		}
	}

	for _, entry := range req.Preferences {
		if entry.Action == consts.ActionDelete {
			continue
		}
		var payload writer.Preferences
		if err := mapstructure.Decode(entry.Payload, &payload); err != nil {
			log.CtxError(ctx, "解析偏好载荷失败, key=%s: %v", entry.Key, err)
			continue
		}
		p := &writing.Preferences{
			WriterKey:        item.WriterKey,
			InstructionsZoom: payload.InstructionsZoom,
			EditorZoom:       payload.EditorZoom,
		}
		if err := s.PreferencesMapper.Save(ctx, p); err != nil {
			log.CtxError(ctx, "保存写作偏好失败: %v", err)
			continue
		}
		key := entry.Key
		resp.Preferences[entry.Key] = &key
	}

	return resp, nil
}

// PutFinal 保存定稿，可同时携带最后一批编辑记录
// 请求中的content/hash是权威内容，核对结果只用于补全步骤日志
func (s *WritingService) PutFinal(ctx context.Context, req *writer.PutFinalReq) (*writer.PutStepsResp, error) {
	if req.Content == nil || req.Hash == nil || req.Authorized == nil {
		return nil, consts.ErrInvalidParams
	}

	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		return nil, consts.ErrNotFound
	}
	e, err := s.EssayMapper.FindOrCreateByItemKey(ctx, item.Key, item.WriterKey)
	if err != nil {
		return nil, err
	}
	if e.IsAuthorized {
		return &writer.PutStepsResp{}, nil
	}

	res, err := s.reconcileSteps(ctx, e, req.Steps)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	updated := e.WithWrittenText(*req.Content).WithWrittenHash(*req.Hash).WithEditEnded(now)
	if updated.EditStarted == 0 {
		updated = updated.WithEditStarted(now)
	}
	if *req.Authorized {
		updated = updated.WithIsAuthorized(true).WithWritingAuthorized(now, meta.GetUserId())
	}
	if err := s.EssayMapper.Save(ctx, &updated); err != nil {
		return nil, consts.ErrUpdate
	}

	if *req.Authorized {
		// 草稿便签随定稿清空
		if err := s.NoteMapper.DeleteByItemKey(ctx, item.Key); err != nil {
			log.CtxError(ctx, "清空便签失败: %v", err)
		}
		// 定稿时主动预热批改端的整理文本缓存
		if err := s.TextCache.Set(ctx, item.Key, *req.Hash, textproc.Process(*req.Content)); err != nil {
			log.CtxError(ctx, "写入整理文本缓存失败: %v", err)
		}
	}

	return &writer.PutStepsResp{Accepted: int64(len(res.Accepted))}, nil
}

// GetFile 获取任务资源的下载地址
func (s *WritingService) GetFile(ctx context.Context, key string) (*writer.GetFileResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetItemKey() == "" {
		return nil, consts.ErrNotAuthentication
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, meta.GetItemKey())
	if err != nil {
		return nil, consts.ErrNotFound
	}
	r, err := s.ResourceMapper.FindOneByKey(ctx, key)
	if err != nil || r.TaskKey != item.TaskKey {
		return nil, consts.ErrNotFound
	}

	if r.Type == consts.ResourceTypeURL {
		return &writer.GetFileResp{Url: r.Source}, nil
	}

	presigner, err := util.GetS3Presigner()
	if err != nil {
		log.CtxError(ctx, "初始化对象存储失败: %v", err)
		return nil, consts.ErrResourceSign
	}
	url, err := presigner.PresignGet(r.ObjectKey)
	if err != nil {
		log.CtxError(ctx, "生成资源下载链接失败: %v", err)
		return nil, consts.ErrResourceSign
	}
	return &writer.GetFileResp{Url: url}, nil
}
