package essay

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WrittenEssay 一篇作文的权威文本与状态
// 文本哈希由客户端计算，服务端只做不透明比较
type WrittenEssay struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemKey        string             `bson:"item_key" json:"itemKey"`
	WriterKey      string             `bson:"writer_key" json:"writerKey"`
	WrittenText    string             `bson:"written_text" json:"writtenText"`
	WrittenHash    string             `bson:"written_hash" json:"writtenHash"`
	ServiceVersion int                `bson:"service_version" json:"serviceVersion"`
	EditStarted    int64              `bson:"edit_started" json:"editStarted"` // unix秒，0表示未开始
	EditEnded      int64              `bson:"edit_ended" json:"editEnded"`
	IsAuthorized   bool               `bson:"is_authorized" json:"isAuthorized"`

	// 定稿与定案的存档字段
	WritingAuthorized     int64    `bson:"writing_authorized" json:"writingAuthorized"`
	WritingAuthorizedBy   string   `bson:"writing_authorized_by" json:"writingAuthorizedBy"`
	CorrectionFinalized   int64    `bson:"correction_finalized" json:"correctionFinalized"`
	CorrectionFinalizedBy string   `bson:"correction_finalized_by" json:"correctionFinalizedBy"`
	FinalPoints           *float64 `bson:"final_points,omitempty" json:"finalPoints,omitempty"`
	FinalGradeKey         string   `bson:"final_grade_key" json:"finalGradeKey"`
	StitchComment         string   `bson:"stitch_comment" json:"stitchComment"`

	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}

// State 作文生命周期状态
type State int

const (
	StateNotStarted State = iota
	StateWriting
	StateEnded
	StateAuthorized // 终态
)

func (e WrittenEssay) State() State {
	switch {
	case e.IsAuthorized:
		return StateAuthorized
	case e.EditEnded > 0:
		return StateEnded
	case e.EditStarted > 0:
		return StateWriting
	default:
		return StateNotStarted
	}
}

// 以下的WithX方法返回修改后的副本
// 核对流程依赖修改前后的快照对比，不要改回就地修改

func (e WrittenEssay) WithWrittenText(text string) WrittenEssay {
	e.WrittenText = text
	return e
}

func (e WrittenEssay) WithWrittenHash(hash string) WrittenEssay {
	e.WrittenHash = hash
	return e
}

func (e WrittenEssay) WithServiceVersion(version int) WrittenEssay {
	e.ServiceVersion = version
	return e
}

func (e WrittenEssay) WithEditStarted(ts int64) WrittenEssay {
	e.EditStarted = ts
	return e
}

func (e WrittenEssay) WithEditEnded(ts int64) WrittenEssay {
	e.EditEnded = ts
	return e
}

func (e WrittenEssay) WithIsAuthorized(authorized bool) WrittenEssay {
	e.IsAuthorized = authorized
	return e
}

func (e WrittenEssay) WithWritingAuthorized(ts int64, by string) WrittenEssay {
	e.WritingAuthorized = ts
	e.WritingAuthorizedBy = by
	return e
}

// WithStitchDecision 记录缝合裁决结果，finalized为0时仅记录不定案
func (e WrittenEssay) WithStitchDecision(finalized int64, by string, points *float64, gradeKey, comment string) WrittenEssay {
	e.CorrectionFinalized = finalized
	e.CorrectionFinalizedBy = by
	e.FinalPoints = points
	e.FinalGradeKey = gradeKey
	e.StitchComment = comment
	return e
}
