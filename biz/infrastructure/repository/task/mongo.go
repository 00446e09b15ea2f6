package task

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
	CollectionName         = "correction_task"
	ResourceCollectionName = "task_resource"
)

type IMongoMapper interface {
	FindOneByKey(ctx context.Context, key string) (*CorrectionTask, error)
}

type IResourceMongoMapper interface {
	FindByTaskKey(ctx context.Context, taskKey string) ([]*Resource, error)
	FindOneByKey(ctx context.Context, key string) (*Resource, error)
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

func (m *MongoMapper) FindOneByKey(ctx context.Context, key string) (*CorrectionTask, error) {
	var t CorrectionTask
	err := m.conn.FindOneNoCache(ctx, &t, bson.M{"key": key})
	switch {
	case err == nil:
		return &t, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

type ResourceMongoMapper struct {
	conn *monc.Model
}

func NewResourceMongoMapper(config *config.Config) *ResourceMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, ResourceCollectionName, config.Cache)
	return &ResourceMongoMapper{
		conn: conn,
	}
}

func (m *ResourceMongoMapper) FindByTaskKey(ctx context.Context, taskKey string) ([]*Resource, error) {
	var resources []*Resource
	err := m.conn.Find(ctx, &resources, bson.M{consts.TaskKey: taskKey}, &options.FindOptions{
		Sort: bson.M{"title": 1},
	})
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (m *ResourceMongoMapper) FindOneByKey(ctx context.Context, key string) (*Resource, error) {
	var r Resource
	err := m.conn.FindOneNoCache(ctx, &r, bson.M{"key": key})
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}
