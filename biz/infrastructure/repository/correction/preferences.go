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
)

const PreferencesCollectionName = "correction_preferences"

// Preferences 批改端的个人偏好，每个批改人一份
type Preferences struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CorrectorKey          string             `bson:"corrector_key" json:"correctorKey"`
	EssayPageZoom         float64            `bson:"essay_page_zoom" json:"essayPageZoom" mapstructure:"essay_page_zoom"`
	EssayTextZoom         float64            `bson:"essay_text_zoom" json:"essayTextZoom" mapstructure:"essay_text_zoom"`
	SummaryTextZoom       float64            `bson:"summary_text_zoom" json:"summaryTextZoom" mapstructure:"summary_text_zoom"`
	IncludeComments       int                `bson:"include_comments" json:"includeComments" mapstructure:"include_comments"`
	IncludeCommentRatings int                `bson:"include_comment_ratings" json:"includeCommentRatings" mapstructure:"include_comment_ratings"`
	IncludeCommentPoints  int                `bson:"include_comment_points" json:"includeCommentPoints" mapstructure:"include_comment_points"`
	IncludeCriteriaPoints int                `bson:"include_criteria_points" json:"includeCriteriaPoints" mapstructure:"include_criteria_points"`
	UpdateTime            time.Time          `bson:"update_time" json:"updateTime"`
}

type IPreferencesMongoMapper interface {
	FindOne(ctx context.Context, correctorKey string) (*Preferences, error)
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

func (m *PreferencesMongoMapper) FindOne(ctx context.Context, correctorKey string) (*Preferences, error) {
	var p Preferences
	err := m.conn.FindOneNoCache(ctx, &p, bson.M{consts.CorrectorKey: correctorKey})
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
	existing, err := m.FindOne(ctx, preferences.CorrectorKey)
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
