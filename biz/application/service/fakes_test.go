package service

import (
	"context"
	"fmt"

	"essay-assess/biz/infrastructure/consts"
	"essay-assess/biz/infrastructure/lock"
	"essay-assess/biz/infrastructure/repository/correction"
	"essay-assess/biz/infrastructure/repository/criteria"
	"essay-assess/biz/infrastructure/repository/essay"
	"essay-assess/biz/infrastructure/repository/task"
	"essay-assess/biz/infrastructure/repository/writing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 内存版mapper，行为对齐mongo实现

type fakeTaskMapper struct {
	tasks map[string]*task.CorrectionTask
}

func (f *fakeTaskMapper) FindOneByKey(_ context.Context, key string) (*task.CorrectionTask, error) {
	if t, ok := f.tasks[key]; ok {
		return t, nil
	}
	return nil, consts.ErrNotFound
}

type fakeResourceMapper struct {
	resources []*task.Resource
}

func (f *fakeResourceMapper) FindByTaskKey(_ context.Context, taskKey string) ([]*task.Resource, error) {
	var out []*task.Resource
	for _, r := range f.resources {
		if r.TaskKey == taskKey {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResourceMapper) FindOneByKey(_ context.Context, key string) (*task.Resource, error) {
	for _, r := range f.resources {
		if r.Key == key {
			return r, nil
		}
	}
	return nil, consts.ErrNotFound
}

type fakeItemMapper struct {
	items map[string]*correction.Item
}

func (f *fakeItemMapper) FindOneByKey(_ context.Context, key string) (*correction.Item, error) {
	if item, ok := f.items[key]; ok {
		return item, nil
	}
	return nil, consts.ErrNotFound
}

func (f *fakeItemMapper) FindByTaskKey(_ context.Context, taskKey string) ([]*correction.Item, error) {
	var out []*correction.Item
	for _, item := range f.items {
		if item.TaskKey == taskKey {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeCorrectorMapper struct {
	assignments []*correction.Corrector
}

func (f *fakeCorrectorMapper) FindByItemKey(_ context.Context, itemKey string) ([]*correction.Corrector, error) {
	var out []*correction.Corrector
	for _, a := range f.assignments {
		if a.ItemKey == itemKey {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCorrectorMapper) FindByCorrectorKey(_ context.Context, correctorKey string) ([]*correction.Corrector, error) {
	var out []*correction.Corrector
	for _, a := range f.assignments {
		if a.CorrectorKey == correctorKey {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCorrectorMapper) IsCorrectorOfItem(_ context.Context, itemKey, correctorKey string) (bool, error) {
	for _, a := range f.assignments {
		if a.ItemKey == itemKey && a.CorrectorKey == correctorKey {
			return true, nil
		}
	}
	return false, nil
}

type fakeEssayMapper struct {
	essays map[string]*essay.WrittenEssay
}

func (f *fakeEssayMapper) FindOneByItemKey(_ context.Context, itemKey string) (*essay.WrittenEssay, error) {
	if e, ok := f.essays[itemKey]; ok {
		return e, nil
	}
	return nil, consts.ErrNotFound
}

func (f *fakeEssayMapper) FindOrCreateByItemKey(ctx context.Context, itemKey, writerKey string) (*essay.WrittenEssay, error) {
	if e, ok := f.essays[itemKey]; ok {
		return e, nil
	}
	e := &essay.WrittenEssay{
		ID:             primitive.NewObjectID(),
		ItemKey:        itemKey,
		WriterKey:      writerKey,
		ServiceVersion: consts.DefaultServiceVersion,
	}
	f.essays[itemKey] = e
	return e, nil
}

func (f *fakeEssayMapper) Save(_ context.Context, e *essay.WrittenEssay) error {
	stored := *e
	f.essays[e.ItemKey] = &stored
	return nil
}

type fakeStepMapper struct {
	steps []*essay.WritingStep
}

func (f *fakeStepMapper) Append(_ context.Context, steps []*essay.WritingStep) error {
	f.steps = append(f.steps, steps...)
	return nil
}

func (f *fakeStepMapper) HasByHashAfter(_ context.Context, itemKey, hashAfter string) (bool, error) {
	for _, s := range f.steps {
		if s.ItemKey == itemKey && s.HashAfter == hashAfter {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStepMapper) FindByItemKey(_ context.Context, itemKey string) ([]*essay.WritingStep, error) {
	var out []*essay.WritingStep
	for _, s := range f.steps {
		if s.ItemKey == itemKey {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStepMapper) CountByItemKey(_ context.Context, itemKey string) (int64, error) {
	var n int64
	for _, s := range f.steps {
		if s.ItemKey == itemKey {
			n++
		}
	}
	return n, nil
}

type fakeNoteMapper struct {
	notes []*writing.Note
}

func (f *fakeNoteMapper) FindByItemKey(_ context.Context, itemKey string) ([]*writing.Note, error) {
	var out []*writing.Note
	for _, n := range f.notes {
		if n.ItemKey == itemKey {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteMapper) Save(_ context.Context, note *writing.Note) error {
	for i, n := range f.notes {
		if n.ItemKey == note.ItemKey && n.NoteNo == note.NoteNo {
			f.notes[i] = note
			return nil
		}
	}
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeNoteMapper) DeleteByItemKey(_ context.Context, itemKey string) error {
	var kept []*writing.Note
	for _, n := range f.notes {
		if n.ItemKey != itemKey {
			kept = append(kept, n)
		}
	}
	f.notes = kept
	return nil
}

type fakeWritingPrefsMapper struct {
	prefs map[string]*writing.Preferences
}

func (f *fakeWritingPrefsMapper) FindOne(_ context.Context, writerKey string) (*writing.Preferences, error) {
	if p, ok := f.prefs[writerKey]; ok {
		return p, nil
	}
	return nil, consts.ErrNotFound
}

func (f *fakeWritingPrefsMapper) Save(_ context.Context, p *writing.Preferences) error {
	f.prefs[p.WriterKey] = p
	return nil
}

type fakeSummaryMapper struct {
	summaries []*correction.Summary
}

func (f *fakeSummaryMapper) FindOne(_ context.Context, itemKey, correctorKey string) (*correction.Summary, error) {
	for _, s := range f.summaries {
		if s.ItemKey == itemKey && s.CorrectorKey == correctorKey {
			return s, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeSummaryMapper) FindByItemKey(_ context.Context, itemKey string) ([]*correction.Summary, error) {
	var out []*correction.Summary
	for _, s := range f.summaries {
		if s.ItemKey == itemKey {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummaryMapper) Save(_ context.Context, summary *correction.Summary) error {
	stored := *summary
	for i, s := range f.summaries {
		if s.ItemKey == summary.ItemKey && s.CorrectorKey == summary.CorrectorKey {
			f.summaries[i] = &stored
			return nil
		}
	}
	f.summaries = append(f.summaries, &stored)
	return nil
}

type fakeCommentMapper struct {
	comments map[string]*correction.Comment
}

func (f *fakeCommentMapper) FindByItemAndCorrector(_ context.Context, itemKey, correctorKey string) ([]*correction.Comment, error) {
	var out []*correction.Comment
	for _, c := range f.comments {
		if c.ItemKey == itemKey && c.CorrectorKey == correctorKey {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentMapper) Save(_ context.Context, comment *correction.Comment) (string, error) {
	if existing, ok := f.comments[comment.Key]; ok {
		if existing.CorrectorKey != comment.CorrectorKey {
			return "", nil
		}
		stored := *comment
		f.comments[comment.Key] = &stored
		return comment.Key, nil
	}
	comment.Key = primitive.NewObjectID().Hex()
	stored := *comment
	f.comments[comment.Key] = &stored
	return comment.Key, nil
}

func (f *fakeCommentMapper) Delete(_ context.Context, key, correctorKey string) (bool, error) {
	if c, ok := f.comments[key]; ok && c.CorrectorKey == correctorKey {
		delete(f.comments, key)
		return true, nil
	}
	return false, nil
}

type fakePointsMapper struct {
	points map[string]*correction.Points
}

func (f *fakePointsMapper) FindByItemAndCorrector(_ context.Context, itemKey, correctorKey string) ([]*correction.Points, error) {
	var out []*correction.Points
	for _, p := range f.points {
		if p.ItemKey == itemKey && p.CorrectorKey == correctorKey {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePointsMapper) Save(_ context.Context, points *correction.Points) (string, error) {
	if existing, ok := f.points[points.Key]; ok {
		if existing.CorrectorKey != points.CorrectorKey {
			return "", nil
		}
		stored := *points
		f.points[points.Key] = &stored
		return points.Key, nil
	}
	points.Key = primitive.NewObjectID().Hex()
	stored := *points
	f.points[points.Key] = &stored
	return points.Key, nil
}

func (f *fakePointsMapper) Delete(_ context.Context, key, correctorKey string) (bool, error) {
	if p, ok := f.points[key]; ok && p.CorrectorKey == correctorKey {
		delete(f.points, key)
		return true, nil
	}
	return false, nil
}

type fakeCorrectionPrefsMapper struct {
	prefs map[string]*correction.Preferences
}

func (f *fakeCorrectionPrefsMapper) FindOne(_ context.Context, correctorKey string) (*correction.Preferences, error) {
	if p, ok := f.prefs[correctorKey]; ok {
		return p, nil
	}
	return nil, consts.ErrNotFound
}

func (f *fakeCorrectionPrefsMapper) Save(_ context.Context, p *correction.Preferences) error {
	f.prefs[p.CorrectorKey] = p
	return nil
}

type fakeCriteriaMapper struct {
	criteria []*criteria.RatingCriterion
	levels   []*criteria.GradeLevel
}

func (f *fakeCriteriaMapper) ListRatingCriteria(_ context.Context, taskKey string) ([]*criteria.RatingCriterion, error) {
	var out []*criteria.RatingCriterion
	for _, c := range f.criteria {
		if c.TaskKey == taskKey {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCriteriaMapper) ListGradeLevels(_ context.Context, taskKey string) ([]*criteria.GradeLevel, error) {
	var out []*criteria.GradeLevel
	for _, l := range f.levels {
		if l.TaskKey == taskKey {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCriteriaMapper) Close() error { return nil }

type fakeTextCache struct {
	data map[string]string
}

func (f *fakeTextCache) key(itemKey, hash string) string {
	return fmt.Sprintf("%s:%s", itemKey, hash)
}

func (f *fakeTextCache) Get(_ context.Context, itemKey, hash string) (string, error) {
	if v, ok := f.data[f.key(itemKey, hash)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss")
}

func (f *fakeTextCache) Set(_ context.Context, itemKey, hash, text string) error {
	f.data[f.key(itemKey, hash)] = text
	return nil
}

func (f *fakeTextCache) Delete(_ context.Context, itemKey, hash string) error {
	delete(f.data, f.key(itemKey, hash))
	return nil
}

type noopLock struct{}

func (noopLock) Lock() error   { return nil }
func (noopLock) Unlock() error { return nil }

type fakeLockFactory struct{}

func (fakeLockFactory) NewMutex(_ context.Context, _ string, _, _ int) lock.Locker {
	return noopLock{}
}
