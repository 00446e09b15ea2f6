package service

import (
	"context"
	"time"

	"essay-assess/biz/adaptor"
	"essay-assess/biz/application/dto/assess/corrector"
	"essay-assess/biz/application/dto/basic"
	"essay-assess/biz/infrastructure/cache"
	"essay-assess/biz/infrastructure/consts"
	"essay-assess/biz/infrastructure/lock"
	"essay-assess/biz/infrastructure/repository/correction"
	"essay-assess/biz/infrastructure/repository/criteria"
	"essay-assess/biz/infrastructure/repository/essay"
	"essay-assess/biz/infrastructure/repository/task"
	"essay-assess/biz/infrastructure/util"
	"essay-assess/biz/infrastructure/util/consensus"
	"essay-assess/biz/infrastructure/util/log"
	"essay-assess/biz/infrastructure/util/textproc"

	"github.com/google/wire"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type ICorrectionService interface {
	GetData(ctx context.Context) (*corrector.GetDataResp, error)
	GetItem(ctx context.Context, key string) (*corrector.GetItemResp, error)
	PutChanges(ctx context.Context, req *corrector.PutChangesReq) (*corrector.PutChangesResp, error)
	PutStitchDecision(ctx context.Context, key string, req *corrector.PutStitchReq) (*basic.Response, error)
	GetFile(ctx context.Context, key string) (*corrector.GetFileResp, error)
}

type CorrectionService struct {
	TaskMapper        task.IMongoMapper
	ResourceMapper    task.IResourceMongoMapper
	ItemMapper        correction.IItemMongoMapper
	CorrectorMapper   correction.ICorrectorMongoMapper
	EssayMapper       essay.IMongoMapper
	SummaryMapper     correction.ISummaryMongoMapper
	CommentMapper     correction.ICommentMongoMapper
	PointsMapper      correction.IPointsMongoMapper
	PreferencesMapper correction.IPreferencesMongoMapper
	CriteriaMapper    criteria.IMySQLMapper
	TextCache         cache.IProcessedTextCacheMapper
	LockFactory       lock.Factory
}

var CorrectionServiceSet = wire.NewSet(
	wire.Struct(new(CorrectionService), "*"),
	wire.Bind(new(ICorrectionService), new(*CorrectionService)),
)

// GetData 批改端打开时一次性拉取任务、标准与作文列表
func (s *CorrectionService) GetData(ctx context.Context) (*corrector.GetDataResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" || meta.TaskKey == "" {
		return nil, consts.ErrNotAuthentication
	}

	t, err := s.TaskMapper.FindOneByKey(ctx, meta.TaskKey)
	if err != nil {
		log.CtxError(ctx, "获取批改任务失败: %v", err)
		return nil, consts.ErrNotFound
	}

	ratingCriteria, err := s.CriteriaMapper.ListRatingCriteria(ctx, t.Key)
	if err != nil {
		log.CtxError(ctx, "获取评分标准失败: %v", err)
		return nil, consts.ErrGetCriteria
	}
	levels, err := s.CriteriaMapper.ListGradeLevels(ctx, t.Key)
	if err != nil {
		log.CtxError(ctx, "获取等级方案失败: %v", err)
		return nil, consts.ErrGetGradeLevels
	}

	items, err := s.listItems(ctx, meta, t.Key)
	if err != nil {
		return nil, err
	}

	prefs := &correction.Preferences{EssayPageZoom: 1, EssayTextZoom: 1, SummaryTextZoom: 1}
	if meta.GetCorrectorKey() != "" {
		if p, err := s.PreferencesMapper.FindOne(ctx, meta.GetCorrectorKey()); err == nil {
			prefs = p
		}
	}

	resources, err := s.ResourceMapper.FindByTaskKey(ctx, t.Key)
	if err != nil {
		return nil, err
	}

	resp := &corrector.GetDataResp{
		Task: corrector.TaskInfo{
			Title:         t.Title,
			Instructions:  t.Instructions,
			Solution:      t.Solution,
			CorrectionEnd: t.CorrectionEnd,
		},
		Settings: corrector.SettingsInfo{
			MutualVisibility:    t.Settings.MutualVisibility,
			MultiColorHighlight: t.Settings.MultiColorHighlight,
			MaxPoints:           t.Settings.MaxPoints,
			MaxAutoDistance:     t.Settings.MaxAutoDistance,
			StitchWhenDistance:  t.Settings.StitchWhenDistance,
			StitchWhenDecimals:  t.Settings.StitchWhenDecimals,
			PositiveRating:      t.Settings.PositiveRating,
			NegativeRating:      t.Settings.NegativeRating,
		},
		Preferences: corrector.PreferencesInfo{
			EssayPageZoom:         prefs.EssayPageZoom,
			EssayTextZoom:         prefs.EssayTextZoom,
			SummaryTextZoom:       prefs.SummaryTextZoom,
			IncludeComments:       prefs.IncludeComments,
			IncludeCommentRatings: prefs.IncludeCommentRatings,
			IncludeCommentPoints:  prefs.IncludeCommentPoints,
			IncludeCriteriaPoints: prefs.IncludeCriteriaPoints,
		},
	}

	for _, c := range ratingCriteria {
		// 批改人只看到通用标准和分配给自己的标准
		if meta.GetCorrectorKey() != "" && !c.IsGeneral &&
			c.CorrectorKey != nil && *c.CorrectorKey != meta.GetCorrectorKey() {
			continue
		}
		info := corrector.Criterion{
			Key:       c.Key,
			Title:     c.Title,
			Points:    c.Points,
			IsGeneral: c.IsGeneral,
		}
		if c.CorrectorKey != nil {
			info.CorrectorKey = *c.CorrectorKey
		}
		if c.Description != nil {
			info.Description = *c.Description
		}
		resp.Criteria = append(resp.Criteria, info)
	}
	for _, l := range levels {
		resp.Levels = append(resp.Levels, corrector.GradeLevel{
			Key:       l.Key,
			Title:     l.Title,
			MinPoints: l.MinPoints,
		})
	}
	for _, item := range items {
		resp.Items = append(resp.Items, corrector.ItemInfo{
			Key:                  item.Key,
			Title:                item.Title,
			CorrectionAllowed:    item.CorrectionAllowed,
			AuthorizationAllowed: item.AuthorizationAllowed,
		})
	}
	for _, r := range resources {
		resp.Resources = append(resp.Resources, corrector.ResourceInfo{
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

// listItems 批改人看到自己被指派的作文，复核与裁决模式看到任务下全部作文
func (s *CorrectionService) listItems(ctx context.Context, meta *basic.UserMeta, taskKey string) ([]*correction.Item, error) {
	if meta.IsReview || meta.IsStitchDecision {
		return s.ItemMapper.FindByTaskKey(ctx, taskKey)
	}
	assignments, err := s.CorrectorMapper.FindByCorrectorKey(ctx, meta.GetCorrectorKey())
	if err != nil {
		return nil, err
	}
	var items []*correction.Item
	for _, a := range assignments {
		item, err := s.ItemMapper.FindOneByKey(ctx, a.ItemKey)
		if err != nil {
			log.CtxError(ctx, "指派的作文单元不存在, item=%s: %v", a.ItemKey, err)
			continue
		}
		if item.TaskKey == taskKey {
			items = append(items, item)
		}
	}
	return items, nil
}

// checkItemAccess 校验当前用户对作文的访问权限
func (s *CorrectionService) checkItemAccess(ctx context.Context, meta *basic.UserMeta, itemKey string) (*correction.Item, error) {
	item, err := s.ItemMapper.FindOneByKey(ctx, itemKey)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if meta.TaskKey != "" && item.TaskKey != meta.TaskKey {
		return nil, consts.ErrForbidden
	}
	if meta.IsReview || meta.IsStitchDecision {
		return item, nil
	}
	ok, err := s.CorrectorMapper.IsCorrectorOfItem(ctx, itemKey, meta.GetCorrectorKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, consts.ErrNotCorrector
	}
	return item, nil
}

// summaryVisible 他人的批改结果是否对当前用户可见
// 自己的和已定稿的始终可见；任务开启互看后批改人之间还能看到彼此的草稿，
// 复核与裁决模式不受互看影响，只看已定稿的
func summaryVisible(meta *basic.UserMeta, settings task.Settings, sum *correction.Summary) bool {
	if sum.CorrectorKey == meta.GetCorrectorKey() && meta.GetCorrectorKey() != "" {
		return true
	}
	if sum.IsAuthorized {
		return true
	}
	return settings.MutualVisibility && meta.GetCorrectorKey() != ""
}

// GetItem 获取一篇作文的批改数据
func (s *CorrectionService) GetItem(ctx context.Context, key string) (*corrector.GetItemResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	item, err := s.checkItemAccess(ctx, meta, key)
	if err != nil {
		return nil, err
	}
	t, err := s.TaskMapper.FindOneByKey(ctx, item.TaskKey)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	resp := &corrector.GetItemResp{
		Item: corrector.ItemInfo{
			Key:                  item.Key,
			Title:                item.Title,
			CorrectionAllowed:    item.CorrectionAllowed,
			AuthorizationAllowed: item.AuthorizationAllowed,
		},
	}

	correctors, err := s.CorrectorMapper.FindByItemKey(ctx, item.Key)
	if err != nil {
		return nil, err
	}
	for _, c := range correctors {
		resp.Correctors = append(resp.Correctors, corrector.CorrectorInfo{
			ItemKey:      c.ItemKey,
			CorrectorKey: c.CorrectorKey,
			Title:        c.Title,
			Initials:     c.Initials,
			Position:     c.Position,
		})
	}

	summaries, err := s.SummaryMapper.FindByItemKey(ctx, item.Key)
	if err != nil {
		return nil, err
	}
	byCorrector := map[string]*correction.Summary{}
	for _, sum := range summaries {
		byCorrector[sum.CorrectorKey] = sum
	}
	visibleCorrectors := map[string]bool{}
	// 每位批改人都要出一条总评，还没写的合成占位，让查看者知道批改尚未开始
	for _, c := range correctors {
		sum, exists := byCorrector[c.CorrectorKey]
		if !exists {
			sum = &correction.Summary{ItemKey: item.Key, CorrectorKey: c.CorrectorKey}
		}
		if summaryVisible(meta, t.Settings, sum) {
			visibleCorrectors[c.CorrectorKey] = true
		}
		if exists && visibleCorrectors[c.CorrectorKey] {
			resp.Summaries = append(resp.Summaries, corrector.SummaryInfo{
				ItemKey:               sum.ItemKey,
				CorrectorKey:          sum.CorrectorKey,
				Text:                  sum.Text,
				Points:                sum.Points,
				GradeKey:              sum.GradeKey,
				LastChange:            lo.ToPtr(sum.LastChange),
				IsAuthorized:          sum.IsAuthorized,
				IncludeComments:       sum.IncludeComments,
				IncludeCommentRatings: sum.IncludeCommentRatings,
				IncludeCommentPoints:  sum.IncludeCommentPoints,
				IncludeCriteriaPoints: sum.IncludeCriteriaPoints,
			})
		} else {
			// 不可见或尚不存在的总评只露占位，内容字段保持null
			resp.Summaries = append(resp.Summaries, corrector.SummaryInfo{
				ItemKey:      item.Key,
				CorrectorKey: c.CorrectorKey,
			})
		}
	}

	for _, c := range correctors {
		if !visibleCorrectors[c.CorrectorKey] {
			continue
		}
		comments, err := s.CommentMapper.FindByItemAndCorrector(ctx, item.Key, c.CorrectorKey)
		if err != nil {
			return nil, err
		}
		for _, cm := range comments {
			var marks []map[string]any
			if err := mapstructure.Decode(cm.Marks, &marks); err != nil {
				log.CtxError(ctx, "序列化图形标记失败, comment=%s: %v", cm.Key, err)
			}
			resp.Comments = append(resp.Comments, corrector.CommentInfo{
				Key:           cm.Key,
				ItemKey:       cm.ItemKey,
				CorrectorKey:  cm.CorrectorKey,
				StartPosition: cm.StartPosition,
				EndPosition:   cm.EndPosition,
				ParentNumber:  cm.ParentNumber,
				Comment:       cm.Comment,
				Rating:        cm.Rating,
				Marks:         marks,
			})
		}
		points, err := s.PointsMapper.FindByItemAndCorrector(ctx, item.Key, c.CorrectorKey)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			resp.Points = append(resp.Points, corrector.PointsInfo{
				Key:          p.Key,
				ItemKey:      p.ItemKey,
				CorrectorKey: p.CorrectorKey,
				CommentKey:   p.CommentKey,
				CriterionKey: p.CriterionKey,
				Points:       p.Points,
			})
		}
	}

	e, err := s.EssayMapper.FindOneByItemKey(ctx, item.Key)
	if err == nil {
		resp.Essay = corrector.EssayInfo{
			Started:             e.EditStarted,
			Ended:               e.EditEnded,
			Authorized:          e.IsAuthorized,
			CorrectionFinalized: e.CorrectionFinalized,
			FinalPoints:         e.FinalPoints,
			StitchComment:       e.StitchComment,
		}
		if e.EditEnded > 0 || e.IsAuthorized {
			resp.Essay.Text = lo.ToPtr(s.processedText(ctx, e))
		}
		if res, ok := s.evaluateConsensus(correctors, summaries, t.Settings); ok {
			resp.Essay.StitchRequired = res.StitchRequired
			resp.Essay.StitchSuggestedValue = lo.ToPtr(res.Suggested)
		}
	}

	return resp, nil
}

// processedText 取整理后的展示文本，缓存按内容哈希命中
func (s *CorrectionService) processedText(ctx context.Context, e *essay.WrittenEssay) string {
	if cached, err := s.TextCache.Get(ctx, e.ItemKey, e.WrittenHash); err == nil {
		return cached
	}
	processed := textproc.Process(e.WrittenText)
	if err := s.TextCache.Set(ctx, e.ItemKey, e.WrittenHash, processed); err != nil {
		log.CtxError(ctx, "写入整理文本缓存失败: %v", err)
	}
	return processed
}

// evaluateConsensus 全部批改人都定稿后评估是否需要缝合裁决
func (s *CorrectionService) evaluateConsensus(correctors []*correction.Corrector, summaries []*correction.Summary, settings task.Settings) (consensus.Result, bool) {
	byCorrector := map[string]*correction.Summary{}
	for _, sum := range summaries {
		byCorrector[sum.CorrectorKey] = sum
	}
	var points []float64
	for _, c := range correctors {
		sum, ok := byCorrector[c.CorrectorKey]
		if !ok || !sum.IsAuthorized || sum.Points == nil {
			return consensus.Result{}, false
		}
		points = append(points, *sum.Points)
	}
	if len(points) == 0 {
		return consensus.Result{}, false
	}
	return consensus.Evaluate(points, consensus.Settings{
		MaxAutoDistance:    settings.MaxAutoDistance,
		StitchWhenDistance: settings.StitchWhenDistance,
		StitchWhenDecimals: settings.StitchWhenDecimals,
	}), true
}

// changesAllowed 某篇作文当前是否接受该批改人的写入
// 条件：指派在册、作文开放批改、自己的总评还没定稿
func (s *CorrectionService) changesAllowed(ctx context.Context, correctorKey, itemKey string, allowed map[string]bool) bool {
	if v, ok := allowed[itemKey]; ok {
		return v
	}
	allowed[itemKey] = false

	item, err := s.ItemMapper.FindOneByKey(ctx, itemKey)
	if err != nil || !item.CorrectionAllowed {
		return false
	}
	isCorrector, err := s.CorrectorMapper.IsCorrectorOfItem(ctx, itemKey, correctorKey)
	if err != nil || !isCorrector {
		return false
	}
	sum, err := s.SummaryMapper.FindOne(ctx, itemKey, correctorKey)
	if err == nil && sum.IsAuthorized {
		return false
	}

	allowed[itemKey] = true
	return true
}

// PutChanges 保存批改端缓冲的批注、评分、总评与偏好变更
//
// 批注先于评分处理：同一批里评分可能引用批注的临时key，
// 批注落库后把临时key换成持久化key再保存评分。
// 返回的map中出现的key表示该条已接受，未出现的由客户端稍后重发。
func (s *CorrectionService) PutChanges(ctx context.Context, req *corrector.PutChangesReq) (*corrector.PutChangesResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	correctorKey := meta.GetCorrectorKey()
	if correctorKey == "" {
		// 复核与裁决模式是只读的
		return nil, consts.ErrNotCorrector
	}

	resp := &corrector.PutChangesResp{
		Comments:    map[string]*string{},
		Points:      map[string]*string{},
		Summaries:   map[string]*string{},
		Preferences: map[string]*string{},
	}
	allowed := map[string]bool{}
	commentKeys := map[string]string{} // 临时key -> 持久化key
	itemTimes := map[string]int64{}    // 每篇作文本批变更的最大服务端时间
	summaryTouched := map[string]bool{}

	for _, entry := range req.Comments {
		if !s.changesAllowed(ctx, correctorKey, entry.ItemKey, allowed) {
			continue
		}
		if entry.Action == consts.ActionDelete {
			if _, err := s.CommentMapper.Delete(ctx, entry.Key, correctorKey); err != nil {
				log.CtxError(ctx, "删除批注失败, key=%s: %v", entry.Key, err)
				continue
			}
			resp.Comments[entry.Key] = nil
			s.recordTime(itemTimes, entry)
			continue
		}

		var payload corrector.CommentPayload
		if err := mapstructure.Decode(entry.Payload, &payload); err != nil {
			log.CtxError(ctx, "解析批注载荷失败, key=%s: %v", entry.Key, err)
			continue
		}
		if payload.ItemKey != entry.ItemKey || payload.CorrectorKey != correctorKey {
			continue
		}
		var marks []correction.Mark
		if err := mapstructure.Decode(payload.Marks, &marks); err != nil {
			log.CtxError(ctx, "解析图形标记失败, key=%s: %v", entry.Key, err)
			continue
		}
		persisted, err := s.CommentMapper.Save(ctx, &correction.Comment{
			Key:           entry.Key,
			ItemKey:       entry.ItemKey,
			CorrectorKey:  correctorKey,
			StartPosition: payload.StartPosition,
			EndPosition:   payload.EndPosition,
			ParentNumber:  payload.ParentNumber,
			Comment:       payload.Comment,
			Rating:        payload.Rating,
			Marks:         marks,
		})
		if err != nil {
			log.CtxError(ctx, "保存批注失败, key=%s: %v", entry.Key, err)
			continue
		}
		if persisted == "" {
			continue
		}
		resp.Comments[entry.Key] = &persisted
		commentKeys[entry.Key] = persisted
		s.recordTime(itemTimes, entry)
	}

	for _, entry := range req.Points {
		if !s.changesAllowed(ctx, correctorKey, entry.ItemKey, allowed) {
			continue
		}
		if entry.Action == consts.ActionDelete {
			if _, err := s.PointsMapper.Delete(ctx, entry.Key, correctorKey); err != nil {
				log.CtxError(ctx, "删除评分失败, key=%s: %v", entry.Key, err)
				continue
			}
			resp.Points[entry.Key] = nil
			s.recordTime(itemTimes, entry)
			continue
		}

		var payload corrector.PointsPayload
		if err := mapstructure.Decode(entry.Payload, &payload); err != nil {
			log.CtxError(ctx, "解析评分载荷失败, key=%s: %v", entry.Key, err)
			continue
		}
		if payload.ItemKey != entry.ItemKey || payload.CorrectorKey != correctorKey {
			continue
		}
		commentKey := payload.CommentKey
		if mapped, ok := commentKeys[commentKey]; ok {
			commentKey = mapped
		}
		persisted, err := s.PointsMapper.Save(ctx, &correction.Points{
			Key:          entry.Key,
			ItemKey:      entry.ItemKey,
			CorrectorKey: correctorKey,
			CommentKey:   commentKey,
			CriterionKey: payload.CriterionKey,
			Points:       payload.Points,
		})
		if err != nil {
			log.CtxError(ctx, "保存评分失败, key=%s: %v", entry.Key, err)
			continue
		}
		if persisted == "" {
			continue
		}
		resp.Points[entry.Key] = &persisted
		s.recordTime(itemTimes, entry)
	}

	for _, entry := range req.Summaries {
		if entry.Action == consts.ActionDelete {
			continue
		}
		if !s.changesAllowed(ctx, correctorKey, entry.ItemKey, allowed) {
			continue
		}
		var payload corrector.SummaryPayload
		if err := mapstructure.Decode(entry.Payload, &payload); err != nil {
			log.CtxError(ctx, "解析总评载荷失败, key=%s: %v", entry.Key, err)
			continue
		}
		if payload.ItemKey != entry.ItemKey || payload.CorrectorKey != correctorKey {
			continue
		}
		// 总评的最后变更时间取本批该作文的最大时间，批注/评分在后也能体现
		lastChange := entry.ServerTime
		if ts := itemTimes[entry.ItemKey]; ts > lastChange {
			lastChange = ts
		}
		err := s.SummaryMapper.Save(ctx, &correction.Summary{
			ItemKey:               entry.ItemKey,
			CorrectorKey:          correctorKey,
			Text:                  payload.Text,
			Points:                payload.Points,
			GradeKey:              payload.GradeKey,
			LastChange:            lastChange,
			IsAuthorized:          payload.IsAuthorized,
			IncludeComments:       payload.IncludeComments,
			IncludeCommentRatings: payload.IncludeCommentRatings,
			IncludeCommentPoints:  payload.IncludeCommentPoints,
			IncludeCriteriaPoints: payload.IncludeCriteriaPoints,
		})
		if err != nil {
			log.CtxError(ctx, "保存总评失败, key=%s: %v", entry.Key, err)
			continue
		}
		key := entry.Key
		resp.Summaries[entry.Key] = &key
		summaryTouched[entry.ItemKey] = true
		if payload.IsAuthorized {
			// 定稿即锁定，本批后续对这篇作文的写入不再接受
			allowed[entry.ItemKey] = false
		}
	}

	for _, entry := range req.Preferences {
		if entry.Action == consts.ActionDelete {
			continue
		}
		var payload corrector.PreferencesInfo
		if err := mapstructure.Decode(entry.Payload, &payload); err != nil {
			log.CtxError(ctx, "解析偏好载荷失败, key=%s: %v", entry.Key, err)
			continue
		}
		err := s.PreferencesMapper.Save(ctx, &correction.Preferences{
			CorrectorKey:          correctorKey,
			EssayPageZoom:         payload.EssayPageZoom,
			EssayTextZoom:         payload.EssayTextZoom,
			SummaryTextZoom:       payload.SummaryTextZoom,
			IncludeComments:       payload.IncludeComments,
			IncludeCommentRatings: payload.IncludeCommentRatings,
			IncludeCommentPoints:  payload.IncludeCommentPoints,
			IncludeCriteriaPoints: payload.IncludeCriteriaPoints,
		})
		if err != nil {
			log.CtxError(ctx, "保存批改偏好失败: %v", err)
			continue
		}
		key := entry.Key
		resp.Preferences[entry.Key] = &key
	}

	// 批注或评分有变更的作文，把总评的最后变更时间推到本批最大时间
	for itemKey, ts := range itemTimes {
		if summaryTouched[itemKey] {
			continue
		}
		s.touchSummary(ctx, itemKey, correctorKey, ts)
	}

	return resp, nil
}

func (s *CorrectionService) recordTime(itemTimes map[string]int64, entry corrector.ChangeEntry) {
	if entry.ServerTime > itemTimes[entry.ItemKey] {
		itemTimes[entry.ItemKey] = entry.ServerTime
	}
}

func (s *CorrectionService) touchSummary(ctx context.Context, itemKey, correctorKey string, ts int64) {
	sum, err := s.SummaryMapper.FindOne(ctx, itemKey, correctorKey)
	if err != nil {
		sum = &correction.Summary{ItemKey: itemKey, CorrectorKey: correctorKey}
	}
	if sum.LastChange >= ts {
		return
	}
	updated := sum.WithLastChange(ts)
	if err := s.SummaryMapper.Save(ctx, &updated); err != nil {
		log.CtxError(ctx, "更新总评时间失败, item=%s: %v", itemKey, err)
	}
}

// PutStitchDecision 提交缝合裁决，确定最终得分
func (s *CorrectionService) PutStitchDecision(ctx context.Context, key string, req *corrector.PutStitchReq) (*basic.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if !meta.IsStitchDecision {
		return nil, consts.ErrStitchNotAllowed
	}
	if req.FinalPoints == nil {
		return nil, consts.ErrInvalidParams
	}

	item, err := s.ItemMapper.FindOneByKey(ctx, key)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if !item.AuthorizationAllowed {
		return nil, consts.ErrStitchNotAllowed
	}
	t, err := s.TaskMapper.FindOneByKey(ctx, item.TaskKey)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	correctors, err := s.CorrectorMapper.FindByItemKey(ctx, item.Key)
	if err != nil {
		return nil, err
	}
	summaries, err := s.SummaryMapper.FindByItemKey(ctx, item.Key)
	if err != nil {
		return nil, err
	}
	res, ok := s.evaluateConsensus(correctors, summaries, t.Settings)
	if !ok {
		// 还有批改人没定稿
		return nil, consts.ErrStitchNotAllowed
	}
	if !res.StitchRequired {
		return nil, consts.ErrStitchNotRequired
	}

	// 同一篇作文同一时刻只允许一份裁决写入
	mutex := s.LockFactory.NewMutex(ctx, "stitch:"+item.Key, consts.StitchLockTTL, consts.StitchLockWait)
	if err := mutex.Lock(); err != nil {
		return nil, consts.ErrOneStitch
	}
	defer func() {
		if err := mutex.Unlock(); err != nil {
			log.CtxError(ctx, "释放裁决锁失败: %v", err)
		}
	}()

	e, err := s.EssayMapper.FindOneByItemKey(ctx, item.Key)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if e.CorrectionFinalized > 0 {
		return nil, consts.ErrItemFinalized
	}

	var finalized int64
	if req.Finalize {
		finalized = time.Now().Unix()
	}
	updated := e.WithStitchDecision(finalized, meta.GetUserId(), req.FinalPoints, req.GradeKey, req.StitchComment)
	if err := s.EssayMapper.Save(ctx, &updated); err != nil {
		log.CtxError(ctx, "保存缝合裁决失败: %v", err)
		return nil, consts.ErrStitchSave
	}
	return util.Succeed("缝合裁决已保存")
}

// GetFile 获取任务资源的下载地址
func (s *CorrectionService) GetFile(ctx context.Context, key string) (*corrector.GetFileResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" || meta.TaskKey == "" {
		return nil, consts.ErrNotAuthentication
	}

	r, err := s.ResourceMapper.FindOneByKey(ctx, key)
	if err != nil || r.TaskKey != meta.TaskKey {
		return nil, consts.ErrNotFound
	}
	if r.Type == consts.ResourceTypeURL {
		return &corrector.GetFileResp{Url: r.Source}, nil
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
	return &corrector.GetFileResp{Url: url}, nil
}
