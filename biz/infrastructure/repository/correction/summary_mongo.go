package correction

import (
	"context"
	"errors"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/consts"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SummaryCollectionName = "correction_summary"

type ISummaryMongoMapper interface {
	FindOne(ctx context.Context, itemKey, correctorKey string) (*Summary, error)
	FindByItemKey(ctx context.Context, itemKey string) ([]*Summary, error)
	Save(ctx context.Context, summary *Summary) error
}

type SummaryMongoMapper struct {
	conn *monc.Model
}

func NewSummaryMongoMapper(config *config.Config) *SummaryMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, SummaryCollectionName, config.Cache)
	return &SummaryMongoMapper{
		conn: conn,
	}
}

func (m *SummaryMongoMapper) FindOne(ctx context.Context, itemKey, correctorKey string) (*Summary, error) {
	var s Summary
	err := m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.ItemKey:      itemKey,
		consts.CorrectorKey: correctorKey,
	})
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *SummaryMongoMapper) FindByItemKey(ctx context.Context, itemKey string) ([]*Summary, error) {
	var summaries []*Summary
	err := m.conn.Find(ctx, &summaries, bson.M{consts.ItemKey: itemKey}, &options.FindOptions{
		Sort: bson.M{consts.CorrectorKey: 1},
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Save 按(item, corrector)更新或插入，保持每对至多一份
func (m *SummaryMongoMapper) Save(ctx context.Context, summary *Summary) error {
	summary.UpdateTime = time.Now()
	if summary.ID.IsZero() {
		existing, err := m.FindOne(ctx, summary.ItemKey, summary.CorrectorKey)
		if err == nil {
			summary.ID = existing.ID
			summary.CreateTime = existing.CreateTime
		} else if errors.Is(err, consts.ErrNotFound) {
			summary.ID = primitive.NewObjectID()
			summary.CreateTime = summary.UpdateTime
			_, err := m.conn.InsertOneNoCache(ctx, summary)
			return err
		} else {
			return err
		}
	}
	_, err := m.conn.UpdateByIDNoCache(ctx, summary.ID, bson.M{"$set": summary})
	return err
}
