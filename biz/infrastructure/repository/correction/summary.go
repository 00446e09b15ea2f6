package correction

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Summary 一个批改人对一篇作文的总评
// 每个(item, corrector)至多一份；定稿后除last_change外不可变
type Summary struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemKey      string             `bson:"item_key" json:"itemKey"`
	CorrectorKey string             `bson:"corrector_key" json:"correctorKey"`
	Text         *string            `bson:"text,omitempty" json:"text,omitempty"`
	Points       *float64           `bson:"points,omitempty" json:"points,omitempty"`
	GradeKey     *string            `bson:"grade_key,omitempty" json:"gradeKey,omitempty"`
	LastChange   int64              `bson:"last_change" json:"lastChange"`
	IsAuthorized bool               `bson:"is_authorized" json:"isAuthorized"`

	// 存档时包含哪些内容，nil表示跟随任务设置
	IncludeComments       *int `bson:"include_comments,omitempty" json:"includeComments,omitempty"`
	IncludeCommentRatings *int `bson:"include_comment_ratings,omitempty" json:"includeCommentRatings,omitempty"`
	IncludeCommentPoints  *int `bson:"include_comment_points,omitempty" json:"includeCommentPoints,omitempty"`
	IncludeCriteriaPoints *int `bson:"include_criteria_points,omitempty" json:"includeCriteriaPoints,omitempty"`

	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}

// WithLastChange 返回更新最后变更时间后的副本
func (s Summary) WithLastChange(ts int64) Summary {
	s.LastChange = ts
	return s
}
