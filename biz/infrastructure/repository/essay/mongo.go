package essay

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
)

const (
	prefixEssayCacheKey = "cache:essay"
	CollectionName      = "essay"
)

type IMongoMapper interface {
	FindOneByItemKey(ctx context.Context, itemKey string) (*WrittenEssay, error)
	FindOrCreateByItemKey(ctx context.Context, itemKey, writerKey string) (*WrittenEssay, error)
	Save(ctx context.Context, essay *WrittenEssay) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) FindOneByItemKey(ctx context.Context, itemKey string) (*WrittenEssay, error) {
	var e WrittenEssay
	err := m.conn.FindOneNoCache(ctx, &e, bson.M{consts.ItemKey: itemKey})
	switch {
	case err == nil:
		return &e, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

// FindOrCreateByItemKey 写手首次访问时创建空白作文
func (m *MongoMapper) FindOrCreateByItemKey(ctx context.Context, itemKey, writerKey string) (*WrittenEssay, error) {
	e, err := m.FindOneByItemKey(ctx, itemKey)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, consts.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	e = &WrittenEssay{
		ID:             primitive.NewObjectID(),
		ItemKey:        itemKey,
		WriterKey:      writerKey,
		ServiceVersion: consts.DefaultServiceVersion,
		CreateTime:     now,
		UpdateTime:     now,
	}
	if _, err := m.conn.InsertOneNoCache(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *MongoMapper) Save(ctx context.Context, essay *WrittenEssay) error {
	essay.UpdateTime = time.Now()
	if essay.ID.IsZero() {
		essay.ID = primitive.NewObjectID()
		essay.CreateTime = essay.UpdateTime
		_, err := m.conn.InsertOneNoCache(ctx, essay)
		return err
	}
	_, err := m.conn.UpdateByIDNoCache(ctx, essay.ID, bson.M{"$set": essay})
	return err
}
