package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CorrectionTask 一次写作任务及其批改设置
// 截止时间等约束由宿主维护，这里按宿主同步的结果存储
type CorrectionTask struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key           string             `bson:"key" json:"key"`
	Title         string             `bson:"title" json:"title"`
	Instructions  string             `bson:"instructions" json:"instructions"`
	Solution      string             `bson:"solution" json:"solution"`
	WriterName    string             `bson:"writer_name" json:"writerName"`
	WritingEnd    int64              `bson:"writing_end" json:"writingEnd"` // unix秒，0表示不限
	CorrectionEnd int64              `bson:"correction_end" json:"correctionEnd"`

	Settings Settings `bson:"settings" json:"settings"`

	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}

// Settings 批改与共识评估的任务级配置
type Settings struct {
	MutualVisibility    bool    `bson:"mutual_visibility" json:"mutualVisibility"`
	MultiColorHighlight bool    `bson:"multi_color_highlight" json:"multiColorHighlight"`
	MaxPoints           int     `bson:"max_points" json:"maxPoints"`
	MaxAutoDistance     float64 `bson:"max_auto_distance" json:"maxAutoDistance"`
	StitchWhenDistance  bool    `bson:"stitch_when_distance" json:"stitchWhenDistance"`
	StitchWhenDecimals  bool    `bson:"stitch_when_decimals" json:"stitchWhenDecimals"`
	PositiveRating      string  `bson:"positive_rating" json:"positiveRating"`
	NegativeRating      string  `bson:"negative_rating" json:"negativeRating"`
}

// Resource 任务附带的资源文件（说明、素材等），文件本体在对象存储
type Resource struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	TaskKey   string             `bson:"task_key" json:"taskKey"`
	Title     string             `bson:"title" json:"title"`
	Type      string             `bson:"type" json:"type"` // file | url
	Source    string             `bson:"source" json:"source"`
	ObjectKey string             `bson:"object_key" json:"objectKey"` // 对象存储中的key
	Mimetype  string             `bson:"mimetype" json:"mimetype"`
	Size      int64              `bson:"size" json:"size"`
}
