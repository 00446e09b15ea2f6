package writing

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

const PreferencesCollectionName = "writing_preferences"

// Preferences 写作端的个人偏好，每个写手一份
type Preferences struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WriterKey        string             `bson:"writer_key" json:"writerKey"`
	InstructionsZoom float64            `bson:"instructions_zoom" json:"instructionsZoom" mapstructure:"instructions_zoom"`
	EditorZoom       float64            `bson:"editor_zoom" json:"editorZoom" mapstructure:"editor_zoom"`
	UpdateTime       time.Time          `bson:"update_time" json:"updateTime"`
}

type IPreferencesMongoMapper interface {
	FindOne(ctx context.Context, writerKey string) (*Preferences, error)
	Save(ctx context.Context, preferences *Preferences) error
}

type PreferencesMongoMapper struct {
	conn *monc.Model
}

func NewPreferencesMongoMapper(config *config.Config) *PreferencesMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, PreferencesCollectionName, config.Cache)
	return &PreferencesMongoMapper{
		conn: conn,
	}
}

func (m *PreferencesMongoMapper) FindOne(ctx context.Context, writerKey string) (*Preferences, error) {
	var p Preferences
	err := m.conn.FindOneNoCache(ctx, &p, bson.M{consts.WriterKey: writerKey})
	switch {
	case err == nil:
		return &p, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *PreferencesMongoMapper) Save(ctx context.Context, preferences *Preferences) error {
	preferences.UpdateTime = time.Now()
	existing, err := m.FindOne(ctx, preferences.WriterKey)
	if err == nil {
		preferences.ID = existing.ID
		_, err := m.conn.UpdateByIDNoCache(ctx, preferences.ID, bson.M{"$set": preferences})
		return err
	}
	if !errors.Is(err, consts.ErrNotFound) {
		return err
	}
	preferences.ID = primitive.NewObjectID()
	_, err = m.conn.InsertOneNoCache(ctx, preferences)
	return err
}
