package correction

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 锚定在文本区间或图形标记上的批注
// 只属于一个批改人，在其总评定稿前可改
type Comment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key           string             `bson:"key" json:"key"`
	ItemKey       string             `bson:"item_key" json:"itemKey"`
	CorrectorKey  string             `bson:"corrector_key" json:"correctorKey"`
	StartPosition int                `bson:"start_position" json:"startPosition"` // 起始词序号，或标记的最低y坐标
	EndPosition   int                `bson:"end_position" json:"endPosition"`
	ParentNumber  int                `bson:"parent_number" json:"parentNumber"` // 起始词所在段号，或标记所在页码
	Comment       string             `bson:"comment" json:"comment"`
	Rating        string             `bson:"rating" json:"rating"` // 空 | cardinal | excellent
	Marks         []Mark             `bson:"marks" json:"marks"`
	CreateTime    time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime    time.Time          `bson:"update_time" json:"updateTime"`
}

// Mark 图形标记，本服务只存储不渲染
type Mark struct {
	Key     string      `bson:"key" json:"key" mapstructure:"key"`
	Shape   string      `bson:"shape" json:"shape" mapstructure:"shape"`
	Pos     MarkPoint   `bson:"pos" json:"pos" mapstructure:"pos"`
	End     MarkPoint   `bson:"end" json:"end" mapstructure:"end"`
	Width   int         `bson:"width" json:"width" mapstructure:"width"`
	Height  int         `bson:"height" json:"height" mapstructure:"height"`
	Polygon []MarkPoint `bson:"polygon" json:"polygon" mapstructure:"polygon"`
	Symbol  string      `bson:"symbol" json:"symbol" mapstructure:"symbol"`
}

type MarkPoint struct {
	X int `bson:"x" json:"x" mapstructure:"x"`
	Y int `bson:"y" json:"y" mapstructure:"y"`
}

// Points 针对某个评分标准给出的得分，可挂在某条批注下
type Points struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key          string             `bson:"key" json:"key"`
	ItemKey      string             `bson:"item_key" json:"itemKey"`
	CorrectorKey string             `bson:"corrector_key" json:"correctorKey"`
	CommentKey   string             `bson:"comment_key" json:"commentKey"` // 可为空
	CriterionKey string             `bson:"criterion_key" json:"criterionKey"`
	Points       float64            `bson:"points" json:"points"`
	CreateTime   time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime   time.Time          `bson:"update_time" json:"updateTime"`
}
