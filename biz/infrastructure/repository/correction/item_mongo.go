package correction

import (
	"context"
	"errors"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/consts"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ItemCollectionName      = "correction_item"
	CorrectorCollectionName = "corrector_assignment"
)

type IItemMongoMapper interface {
	FindOneByKey(ctx context.Context, key string) (*Item, error)
	FindByTaskKey(ctx context.Context, taskKey string) ([]*Item, error)
}

type ICorrectorMongoMapper interface {
	FindByItemKey(ctx context.Context, itemKey string) ([]*Corrector, error)
	FindByCorrectorKey(ctx context.Context, correctorKey string) ([]*Corrector, error)
	IsCorrectorOfItem(ctx context.Context, itemKey, correctorKey string) (bool, error)
}

type ItemMongoMapper struct {
	conn *monc.Model
}

func NewItemMongoMapper(config *config.Config) *ItemMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, ItemCollectionName, config.Cache)
	return &ItemMongoMapper{
		conn: conn,
	}
}

func (m *ItemMongoMapper) FindOneByKey(ctx context.Context, key string) (*Item, error) {
	var item Item
	err := m.conn.FindOneNoCache(ctx, &item, bson.M{"key": key})
	switch {
	case err == nil:
		return &item, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *ItemMongoMapper) FindByTaskKey(ctx context.Context, taskKey string) ([]*Item, error) {
	var items []*Item
	err := m.conn.Find(ctx, &items, bson.M{consts.TaskKey: taskKey}, &options.FindOptions{
		Sort: bson.M{"title": 1},
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

type CorrectorMongoMapper struct {
	conn *monc.Model
}

func NewCorrectorMongoMapper(config *config.Config) *CorrectorMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CorrectorCollectionName, config.Cache)
	return &CorrectorMongoMapper{
		conn: conn,
	}
}

func (m *CorrectorMongoMapper) FindByItemKey(ctx context.Context, itemKey string) ([]*Corrector, error) {
	var correctors []*Corrector
	err := m.conn.Find(ctx, &correctors, bson.M{consts.ItemKey: itemKey}, &options.FindOptions{
		Sort: bson.M{"position": 1},
	})
	if err != nil {
		return nil, err
	}
	return correctors, nil
}

// FindByCorrectorKey 获取某个批改人的全部指派
func (m *CorrectorMongoMapper) FindByCorrectorKey(ctx context.Context, correctorKey string) ([]*Corrector, error) {
	var correctors []*Corrector
	err := m.conn.Find(ctx, &correctors, bson.M{consts.CorrectorKey: correctorKey}, &options.FindOptions{
		Sort: bson.M{consts.ItemKey: 1},
	})
	if err != nil {
		return nil, err
	}
	return correctors, nil
}

func (m *CorrectorMongoMapper) IsCorrectorOfItem(ctx context.Context, itemKey, correctorKey string) (bool, error) {
	total, err := m.conn.CountDocuments(ctx, bson.M{
		consts.ItemKey:      itemKey,
		consts.CorrectorKey: correctorKey,
	})
	if err != nil {
		return false, err
	}
	return total > 0, nil
}
