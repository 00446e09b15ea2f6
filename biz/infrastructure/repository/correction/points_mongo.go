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

const PointsCollectionName = "correction_points"

type IPointsMongoMapper interface {
	FindByItemAndCorrector(ctx context.Context, itemKey, correctorKey string) ([]*Points, error)
	Save(ctx context.Context, points *Points) (string, error)
	Delete(ctx context.Context, key, correctorKey string) (bool, error)
}

type PointsMongoMapper struct {
	conn *monc.Model
}

func NewPointsMongoMapper(config *config.Config) *PointsMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, PointsCollectionName, config.Cache)
	return &PointsMongoMapper{
		conn: conn,
	}
}

func (m *PointsMongoMapper) FindByItemAndCorrector(ctx context.Context, itemKey, correctorKey string) ([]*Points, error) {
	var points []*Points
	err := m.conn.Find(ctx, &points, bson.M{
		consts.ItemKey:      itemKey,
		consts.CorrectorKey: correctorKey,
	}, &options.FindOptions{
		Sort: bson.M{"criterion_key": 1},
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// Save 保存评分并返回持久化key，逻辑同批注
func (m *PointsMongoMapper) Save(ctx context.Context, points *Points) (string, error) {
	now := time.Now()

	if oid, err := primitive.ObjectIDFromHex(points.Key); err == nil {
		var existing Points
		err := m.conn.FindOneNoCache(ctx, &existing, bson.M{consts.ID: oid})
		if err == nil {
			if existing.CorrectorKey != points.CorrectorKey {
				return "", nil
			}
			points.ID = existing.ID
			points.CreateTime = existing.CreateTime
			points.UpdateTime = now
			if _, err := m.conn.UpdateByIDNoCache(ctx, points.ID, bson.M{"$set": points}); err != nil {
				return "", err
			}
			return points.Key, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return "", err
		}
	}

	points.ID = primitive.NewObjectID()
	points.Key = points.ID.Hex()
	points.CreateTime = now
	points.UpdateTime = now
	if _, err := m.conn.InsertOneNoCache(ctx, points); err != nil {
		return "", err
	}
	return points.Key, nil
}

func (m *PointsMongoMapper) Delete(ctx context.Context, key, correctorKey string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return false, nil
	}
	deleted, err := m.conn.DeleteOneNoCache(ctx, bson.M{
		consts.ID:           oid,
		consts.CorrectorKey: correctorKey,
	})
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
