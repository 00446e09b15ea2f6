package writing

import (
	"context"
	"errors"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/consts"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NoteCollectionName = "written_note"

// Note 写作前的草稿便签，正文保存后清空
type Note struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemKey    string             `bson:"item_key" json:"itemKey"`
	NoteNo     int                `bson:"note_no" json:"noteNo"`
	NoteText   *string            `bson:"note_text,omitempty" json:"noteText,omitempty"`
	LastChange int64              `bson:"last_change" json:"lastChange"`
}

type INoteMongoMapper interface {
	FindByItemKey(ctx context.Context, itemKey string) ([]*Note, error)
	Save(ctx context.Context, note *Note) error
	DeleteByItemKey(ctx context.Context, itemKey string) error
}

type NoteMongoMapper struct {
	conn *monc.Model
}

func NewNoteMongoMapper(config *config.Config) *NoteMongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, NoteCollectionName, config.Cache)
	return &NoteMongoMapper{
		conn: conn,
	}
}

func (m *NoteMongoMapper) FindByItemKey(ctx context.Context, itemKey string) ([]*Note, error) {
	var notes []*Note
	err := m.conn.Find(ctx, &notes, bson.M{consts.ItemKey: itemKey}, &options.FindOptions{
		Sort: bson.M{consts.NoteNo: 1},
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Save 按(item, note_no)更新或插入
func (m *NoteMongoMapper) Save(ctx context.Context, note *Note) error {
	var existing Note
	err := m.conn.FindOneNoCache(ctx, &existing, bson.M{
		consts.ItemKey: note.ItemKey,
		consts.NoteNo:  note.NoteNo,
	})
	if err == nil {
		note.ID = existing.ID
		_, err := m.conn.UpdateByIDNoCache(ctx, note.ID, bson.M{"$set": note})
		return err
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	note.ID = primitive.NewObjectID()
	_, err = m.conn.InsertOneNoCache(ctx, note)
	return err
}

func (m *NoteMongoMapper) DeleteByItemKey(ctx context.Context, itemKey string) error {
	_, err := m.conn.DeleteMany(ctx, bson.M{consts.ItemKey: itemKey})
	return err
}
