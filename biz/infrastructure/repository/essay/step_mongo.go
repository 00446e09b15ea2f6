package essay

import (
	"context"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/consts"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const StepCollectionName = "writing_step"

type IStepMongoMapper interface {
	Append(ctx context.Context, steps []*WritingStep) error
	HasByHashAfter(ctx context.Context, itemKey, hashAfter string) (bool, error)
	FindByItemKey(ctx context.Context, itemKey string) ([]*WritingStep, error)
	CountByItemKey(ctx context.Context, itemKey string) (int64, error)
}

type StepMongoMapper struct {
	conn *monc.Model
}

func NewStepMongoMapper(config *config.Config) *StepMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, StepCollectionName, config.Cache)
	return &StepMongoMapper{
		conn: conn,
	}
}

// Append 按接受顺序逐条追加
func (m *StepMongoMapper) Append(ctx context.Context, steps []*WritingStep) error {
	now := time.Now()
	for _, step := range steps {
		if step.ID.IsZero() {
			step.ID = primitive.NewObjectID()
			step.CreateTime = now
		}
		if _, err := m.conn.InsertOneNoCache(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// HasByHashAfter 检查某个结果哈希是否已落库
// hash_after 带时间戳加盐，可用作全量保存的去重标识
func (m *StepMongoMapper) HasByHashAfter(ctx context.Context, itemKey, hashAfter string) (bool, error) {
	total, err := m.conn.CountDocuments(ctx, bson.M{
		consts.ItemKey:   itemKey,
		consts.HashAfter: hashAfter,
	})
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (m *StepMongoMapper) FindByItemKey(ctx context.Context, itemKey string) ([]*WritingStep, error) {
	var steps []*WritingStep
	err := m.conn.Find(ctx, &steps, bson.M{consts.ItemKey: itemKey}, &options.FindOptions{
		Sort: bson.M{consts.ID: 1}, // 落库顺序即接受顺序
	})
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func (m *StepMongoMapper) CountByItemKey(ctx context.Context, itemKey string) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{consts.ItemKey: itemKey})
}
