package service

import (
	"context"
	"testing"

	"essay-assess/biz/adaptor"
	dto "essay-assess/biz/application/dto/assess/corrector"
	"essay-assess/biz/application/dto/basic"
	"essay-assess/biz/infrastructure/consts"
	"essay-assess/biz/infrastructure/repository/correction"
	"essay-assess/biz/infrastructure/repository/essay"
	"essay-assess/biz/infrastructure/repository/task"

	"github.com/samber/lo"
)

type correctionEnv struct {
	svc       *CorrectionService
	tasks     *fakeTaskMapper
	essays    *fakeEssayMapper
	summaries *fakeSummaryMapper
	comments  *fakeCommentMapper
	points    *fakePointsMapper
}

func newCorrectionEnv() *correctionEnv {
	env := &correctionEnv{
		tasks: &fakeTaskMapper{tasks: map[string]*task.CorrectionTask{
			"task-1": {Key: "task-1", Title: "议论文批改", Settings: task.Settings{
				MaxPoints:          20,
				MaxAutoDistance:    1,
				StitchWhenDistance: true,
				StitchWhenDecimals: true,
			}},
		}},
		essays: &fakeEssayMapper{essays: map[string]*essay.WrittenEssay{
			"item-1": {ItemKey: "item-1", WriterKey: "writer-1", WrittenText: "hello world",
				WrittenHash: "h2", EditStarted: 100, EditEnded: 200, IsAuthorized: true},
		}},
		summaries: &fakeSummaryMapper{},
		comments:  &fakeCommentMapper{comments: map[string]*correction.Comment{}},
		points:    &fakePointsMapper{points: map[string]*correction.Points{}},
	}
	env.svc = &CorrectionService{
		TaskMapper:     env.tasks,
		ResourceMapper: &fakeResourceMapper{},
		ItemMapper: &fakeItemMapper{items: map[string]*correction.Item{
			"item-1": {Key: "item-1", TaskKey: "task-1", WriterKey: "writer-1", Title: "作文一",
				CorrectionAllowed: true, AuthorizationAllowed: true},
		}},
		CorrectorMapper: &fakeCorrectorMapper{assignments: []*correction.Corrector{
			{ItemKey: "item-1", CorrectorKey: "corr-a", Title: "批改人甲", Initials: "A", Position: 1},
			{ItemKey: "item-1", CorrectorKey: "corr-b", Title: "批改人乙", Initials: "B", Position: 2},
		}},
		EssayMapper:       env.essays,
		SummaryMapper:     env.summaries,
		CommentMapper:     env.comments,
		PointsMapper:      env.points,
		PreferencesMapper: &fakeCorrectionPrefsMapper{prefs: map[string]*correction.Preferences{}},
		CriteriaMapper:    &fakeCriteriaMapper{},
		TextCache:         &fakeTextCache{data: map[string]string{}},
		LockFactory:       fakeLockFactory{},
	}
	return env
}

func correctorCtx(correctorKey string) context.Context {
	return adaptor.InjectUserMeta(context.Background(), &basic.UserMeta{
		UserId:       "user-" + correctorKey,
		TaskKey:      "task-1",
		CorrectorKey: correctorKey,
	})
}

func arbiterCtx() context.Context {
	return adaptor.InjectUserMeta(context.Background(), &basic.UserMeta{
		UserId:           "arbiter-1",
		TaskKey:          "task-1",
		IsStitchDecision: true,
	})
}

func TestPutChangesTempKeyRemapping(t *testing.T) {
	env := newCorrectionEnv()
	ctx := correctorCtx("corr-a")

	resp, err := env.svc.PutChanges(ctx, &dto.PutChangesReq{
		Comments: []dto.ChangeEntry{
			{Key: "tmp-1", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 500,
				Payload: map[string]any{
					"item_key": "item-1", "corrector_key": "corr-a",
					"start_position": 3, "end_position": 5, "comment": "表述含糊",
				}},
		},
		Points: []dto.ChangeEntry{
			{Key: "tmp-p1", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 600,
				Payload: map[string]any{
					"item_key": "item-1", "corrector_key": "corr-a",
					"comment_key": "tmp-1", "criterion_key": "crit-1", "points": 2.0,
				}},
		},
	})
	if err != nil {
		t.Fatalf("put changes: %v", err)
	}

	persisted, ok := resp.Comments["tmp-1"]
	if !ok || persisted == nil || *persisted == "tmp-1" {
		t.Fatalf("comment temp key not remapped: %v", resp.Comments)
	}
	if _, ok := env.comments.comments[*persisted]; !ok {
		t.Fatalf("comment not stored under persisted key %q", *persisted)
	}

	pKey, ok := resp.Points["tmp-p1"]
	if !ok || pKey == nil {
		t.Fatalf("points entry not accepted: %v", resp.Points)
	}
	stored := env.points.points[*pKey]
	if stored.CommentKey != *persisted {
		t.Errorf("points comment_key = %q, want persisted key %q", stored.CommentKey, *persisted)
	}

	// 批注/评分的变更要把总评的最后变更时间推到本批最大时间
	sum, err := env.summaries.FindOne(ctx, "item-1", "corr-a")
	if err != nil {
		t.Fatalf("summary not touched: %v", err)
	}
	if sum.LastChange != 600 {
		t.Errorf("summary last_change = %d, want 600", sum.LastChange)
	}
}

func TestPutChangesRejectedWhenSummaryAuthorized(t *testing.T) {
	env := newCorrectionEnv()
	env.summaries.summaries = append(env.summaries.summaries, &correction.Summary{
		ItemKey: "item-1", CorrectorKey: "corr-a", IsAuthorized: true,
	})
	ctx := correctorCtx("corr-a")

	resp, err := env.svc.PutChanges(ctx, &dto.PutChangesReq{
		Comments: []dto.ChangeEntry{
			{Key: "tmp-1", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 500,
				Payload: map[string]any{"item_key": "item-1", "corrector_key": "corr-a", "comment": "late"}},
		},
	})
	if err != nil {
		t.Fatalf("put changes: %v", err)
	}
	if len(resp.Comments) != 0 {
		t.Fatalf("changes accepted after authorization: %v", resp.Comments)
	}
	if len(env.comments.comments) != 0 {
		t.Fatalf("comment stored after authorization")
	}
}

func TestPutChangesEnvelopeMismatch(t *testing.T) {
	env := newCorrectionEnv()
	ctx := correctorCtx("corr-a")

	resp, err := env.svc.PutChanges(ctx, &dto.PutChangesReq{
		Comments: []dto.ChangeEntry{
			{Key: "tmp-1", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 500,
				Payload: map[string]any{"item_key": "item-1", "corrector_key": "corr-b", "comment": "smuggled"}},
			// 载荷缺归属字段也拒绝
			{Key: "tmp-2", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 500,
				Payload: map[string]any{"item_key": "item-1", "comment": "no owner"}},
		},
	})
	if err != nil {
		t.Fatalf("put changes: %v", err)
	}
	if len(resp.Comments) != 0 {
		t.Fatalf("entry with mismatched envelope accepted: %v", resp.Comments)
	}
}

func TestPutChangesSummaryTakesBatchMaxTime(t *testing.T) {
	env := newCorrectionEnv()
	ctx := correctorCtx("corr-a")

	resp, err := env.svc.PutChanges(ctx, &dto.PutChangesReq{
		Comments: []dto.ChangeEntry{
			{Key: "tmp-1", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 700,
				Payload: map[string]any{"item_key": "item-1", "corrector_key": "corr-a", "comment": "后改的批注"}},
		},
		Summaries: []dto.ChangeEntry{
			{Key: "s1", ItemKey: "item-1", Action: consts.ActionSave, ServerTime: 500,
				Payload: map[string]any{"item_key": "item-1", "corrector_key": "corr-a", "text": "总评"}},
		},
	})
	if err != nil {
		t.Fatalf("put changes: %v", err)
	}
	if _, ok := resp.Summaries["s1"]; !ok {
		t.Fatalf("summary not accepted: %v", resp.Summaries)
	}
	sum, err := env.summaries.FindOne(ctx, "item-1", "corr-a")
	if err != nil {
		t.Fatalf("summary not stored: %v", err)
	}
	if sum.LastChange != 700 {
		t.Errorf("summary last_change = %d, want batch max 700", sum.LastChange)
	}
}

func TestPutChangesReadOnlyForReviewMode(t *testing.T) {
	env := newCorrectionEnv()
	ctx := adaptor.InjectUserMeta(context.Background(), &basic.UserMeta{
		UserId: "reviewer-1", TaskKey: "task-1", IsReview: true,
	})

	if _, err := env.svc.PutChanges(ctx, &dto.PutChangesReq{}); err != consts.ErrNotCorrector {
		t.Fatalf("got %v, want ErrNotCorrector", err)
	}
}

func summariesByCorrector(resp *dto.GetItemResp) map[string]dto.SummaryInfo {
	m := map[string]dto.SummaryInfo{}
	for _, s := range resp.Summaries {
		m[s.CorrectorKey] = s
	}
	return m
}

func TestGetItemVisibility(t *testing.T) {
	env := newCorrectionEnv()
	env.summaries.summaries = []*correction.Summary{
		{ItemKey: "item-1", CorrectorKey: "corr-a", Text: lo.ToPtr("草稿总评"), Points: lo.ToPtr(10.0)},
		{ItemKey: "item-1", CorrectorKey: "corr-b", Text: lo.ToPtr("定稿总评"), Points: lo.ToPtr(14.0), IsAuthorized: true},
	}
	env.comments.comments["cb"] = &correction.Comment{
		Key: "cb", ItemKey: "item-1", CorrectorKey: "corr-b", Comment: "他人批注",
	}

	// 已定稿的他人结果无条件可见，未定稿的草稿只露占位
	resp, err := env.svc.GetItem(correctorCtx("corr-a"), "item-1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	byCorrector := summariesByCorrector(resp)
	if byCorrector["corr-a"].Text == nil {
		t.Errorf("own summary must be fully visible")
	}
	if byCorrector["corr-b"].Text == nil || *byCorrector["corr-b"].Points != 14 {
		t.Errorf("authorized foreign summary must be visible: %+v", byCorrector["corr-b"])
	}
	if len(resp.Comments) != 1 || resp.Comments[0].CorrectorKey != "corr-b" {
		t.Errorf("authorized foreign comments missing: %v", resp.Comments)
	}

	resp, err = env.svc.GetItem(correctorCtx("corr-b"), "item-1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	byCorrector = summariesByCorrector(resp)
	if byCorrector["corr-a"].Text != nil || byCorrector["corr-a"].Points != nil {
		t.Errorf("draft summary leaked without mutual visibility: %+v", byCorrector["corr-a"])
	}

	// 互看开启后，批改人之间连草稿也可见
	env.tasks.tasks["task-1"].Settings.MutualVisibility = true
	resp, err = env.svc.GetItem(correctorCtx("corr-b"), "item-1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	byCorrector = summariesByCorrector(resp)
	if byCorrector["corr-a"].Text == nil || *byCorrector["corr-a"].Points != 10 {
		t.Errorf("draft summary must be visible with mutual visibility: %+v", byCorrector["corr-a"])
	}

	// 复核模式不受互看影响，仍只看已定稿的
	reviewCtx := adaptor.InjectUserMeta(context.Background(), &basic.UserMeta{
		UserId: "reviewer-1", TaskKey: "task-1", IsReview: true,
	})
	resp, err = env.svc.GetItem(reviewCtx, "item-1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	byCorrector = summariesByCorrector(resp)
	if byCorrector["corr-a"].Text != nil {
		t.Errorf("unauthorized summary visible in review mode")
	}
	if byCorrector["corr-b"].Text == nil {
		t.Errorf("authorized summary hidden in review mode")
	}
}

func TestGetItemPlaceholderPerCorrector(t *testing.T) {
	env := newCorrectionEnv()

	resp, err := env.svc.GetItem(correctorCtx("corr-a"), "item-1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if len(resp.Summaries) != 2 {
		t.Fatalf("summaries = %d, want one per corrector", len(resp.Summaries))
	}
	byCorrector := summariesByCorrector(resp)
	for _, key := range []string{"corr-a", "corr-b"} {
		s, ok := byCorrector[key]
		if !ok {
			t.Fatalf("no placeholder for %s", key)
		}
		if s.IsAuthorized || s.Text != nil || s.Points != nil || s.LastChange != nil {
			t.Errorf("placeholder for %s must keep content fields null: %+v", key, s)
		}
	}
}

func TestGetItemNotCorrector(t *testing.T) {
	env := newCorrectionEnv()
	if _, err := env.svc.GetItem(correctorCtx("corr-x"), "item-1"); err != consts.ErrNotCorrector {
		t.Fatalf("got %v, want ErrNotCorrector", err)
	}
}

func TestGetItemStitchEvaluation(t *testing.T) {
	env := newCorrectionEnv()
	env.summaries.summaries = []*correction.Summary{
		{ItemKey: "item-1", CorrectorKey: "corr-a", Points: lo.ToPtr(12.0), IsAuthorized: true},
		{ItemKey: "item-1", CorrectorKey: "corr-b", Points: lo.ToPtr(16.0), IsAuthorized: true},
	}

	resp, err := env.svc.GetItem(correctorCtx("corr-a"), "item-1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if !resp.Essay.StitchRequired {
		t.Errorf("distance 4 > 1 must require stitch decision")
	}
	if resp.Essay.StitchSuggestedValue == nil || *resp.Essay.StitchSuggestedValue != 14 {
		t.Errorf("suggested = %v, want 14", resp.Essay.StitchSuggestedValue)
	}
	if resp.Essay.Text == nil {
		t.Errorf("processed text missing for ended essay")
	}
}

func TestStitchDecisionFlow(t *testing.T) {
	env := newCorrectionEnv()
	env.summaries.summaries = []*correction.Summary{
		{ItemKey: "item-1", CorrectorKey: "corr-a", Points: lo.ToPtr(12.0), IsAuthorized: true},
		{ItemKey: "item-1", CorrectorKey: "corr-b", Points: lo.ToPtr(16.0), IsAuthorized: true},
	}
	req := &dto.PutStitchReq{FinalPoints: lo.ToPtr(14.0), GradeKey: "good", StitchComment: "取两位批改人的均值", Finalize: true}

	// 非裁决模式不允许
	if _, err := env.svc.PutStitchDecision(correctorCtx("corr-a"), "item-1", req); err != consts.ErrStitchNotAllowed {
		t.Fatalf("got %v, want ErrStitchNotAllowed", err)
	}

	if _, err := env.svc.PutStitchDecision(arbiterCtx(), "item-1", req); err != nil {
		t.Fatalf("stitch decision: %v", err)
	}
	e := env.essays.essays["item-1"]
	if e.CorrectionFinalized == 0 || e.CorrectionFinalizedBy != "arbiter-1" {
		t.Errorf("decision not recorded: %+v", e)
	}
	if e.FinalPoints == nil || *e.FinalPoints != 14 || e.FinalGradeKey != "good" {
		t.Errorf("final points/grade wrong: %+v", e)
	}

	// 定案后不可重复裁决
	if _, err := env.svc.PutStitchDecision(arbiterCtx(), "item-1", req); err != consts.ErrItemFinalized {
		t.Fatalf("got %v, want ErrItemFinalized", err)
	}
}

func TestStitchDecisionNotRequired(t *testing.T) {
	env := newCorrectionEnv()
	env.summaries.summaries = []*correction.Summary{
		{ItemKey: "item-1", CorrectorKey: "corr-a", Points: lo.ToPtr(14.0), IsAuthorized: true},
		{ItemKey: "item-1", CorrectorKey: "corr-b", Points: lo.ToPtr(14.0), IsAuthorized: true},
	}
	req := &dto.PutStitchReq{FinalPoints: lo.ToPtr(14.0), Finalize: true}

	if _, err := env.svc.PutStitchDecision(arbiterCtx(), "item-1", req); err != consts.ErrStitchNotRequired {
		t.Fatalf("got %v, want ErrStitchNotRequired", err)
	}
}

func TestStitchDecisionBlockedUntilAllAuthorized(t *testing.T) {
	env := newCorrectionEnv()
	env.summaries.summaries = []*correction.Summary{
		{ItemKey: "item-1", CorrectorKey: "corr-a", Points: lo.ToPtr(12.0), IsAuthorized: true},
		{ItemKey: "item-1", CorrectorKey: "corr-b", Points: lo.ToPtr(16.0)},
	}
	req := &dto.PutStitchReq{FinalPoints: lo.ToPtr(14.0), Finalize: true}

	if _, err := env.svc.PutStitchDecision(arbiterCtx(), "item-1", req); err != consts.ErrStitchNotAllowed {
		t.Fatalf("got %v, want ErrStitchNotAllowed", err)
	}
}
