package correction

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item 一个可批改单元（对应一篇作文）
// correction_allowed/authorization_allowed 由宿主根据任务期限推导后同步过来
type Item struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key                  string             `bson:"key" json:"key"`
	TaskKey              string             `bson:"task_key" json:"taskKey"`
	WriterKey            string             `bson:"writer_key" json:"writerKey"`
	Title                string             `bson:"title" json:"title"`
	CorrectionAllowed    bool               `bson:"correction_allowed" json:"correctionAllowed"`
	AuthorizationAllowed bool               `bson:"authorization_allowed" json:"authorizationAllowed"`
	CreateTime           time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime           time.Time          `bson:"update_time" json:"updateTime"`
}

// Corrector 批改人在某个批改单元上的指派
type Corrector struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemKey      string             `bson:"item_key" json:"itemKey"`
	CorrectorKey string             `bson:"corrector_key" json:"correctorKey"`
	Title        string             `bson:"title" json:"title"`
	Initials     string             `bson:"initials" json:"initials"`
	Position     int                `bson:"position" json:"position"` // 第一、第二批改人……
}
