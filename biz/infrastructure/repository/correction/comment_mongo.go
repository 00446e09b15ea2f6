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

const CommentCollectionName = "correction_comment"

type ICommentMongoMapper interface {
	FindByItemAndCorrector(ctx context.Context, itemKey, correctorKey string) ([]*Comment, error)
	Save(ctx context.Context, comment *Comment) (string, error)
	Delete(ctx context.Context, key, correctorKey string) (bool, error)
}

type CommentMongoMapper struct {
	conn *monc.Model
}

func NewCommentMongoMapper(config *config.Config) *CommentMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CommentCollectionName, config.Cache)
	return &CommentMongoMapper{
		conn: conn,
	}
}

func (m *CommentMongoMapper) FindByItemAndCorrector(ctx context.Context, itemKey, correctorKey string) ([]*Comment, error) {
	var comments []*Comment
	err := m.conn.Find(ctx, &comments, bson.M{
		consts.ItemKey:      itemKey,
		consts.CorrectorKey: correctorKey,
	}, &options.FindOptions{
		Sort: bson.M{"start_position": 1},
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Save 保存批注并返回持久化key
// 客户端的临时key不是合法的已存在key，此时新建并以新key返回
func (m *CommentMongoMapper) Save(ctx context.Context, comment *Comment) (string, error) {
	now := time.Now()

	if oid, err := primitive.ObjectIDFromHex(comment.Key); err == nil {
		var existing Comment
		err := m.conn.FindOneNoCache(ctx, &existing, bson.M{consts.ID: oid})
		if err == nil {
			if existing.CorrectorKey != comment.CorrectorKey {
				// 不允许改写他人的批注
				return "", nil
			}
			comment.ID = existing.ID
			comment.CreateTime = existing.CreateTime
			comment.UpdateTime = now
			if _, err := m.conn.UpdateByIDNoCache(ctx, comment.ID, bson.M{"$set": comment}); err != nil {
				return "", err
			}
			return comment.Key, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return "", err
		}
	}

	comment.ID = primitive.NewObjectID()
	comment.Key = comment.ID.Hex()
	comment.CreateTime = now
	comment.UpdateTime = now
	if _, err := m.conn.InsertOneNoCache(ctx, comment); err != nil {
		return "", err
	}
	return comment.Key, nil
}

// Delete 删除自己的批注，返回是否真的删除了
func (m *CommentMongoMapper) Delete(ctx context.Context, key, correctorKey string) (bool, error) {
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
