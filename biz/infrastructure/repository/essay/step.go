package essay

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WritingStep 一条已接受的写作编辑记录
// 步骤日志只追加，落库顺序即接受顺序（不一定按timestamp）
type WritingStep struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemKey    string             `bson:"item_key" json:"itemKey"`
	Timestamp  int64              `bson:"timestamp" json:"timestamp"`
	Content    string             `bson:"content" json:"content"`
	IsDelta    bool               `bson:"is_delta" json:"isDelta"`
	HashBefore string             `bson:"hash_before" json:"hashBefore"`
	HashAfter  string             `bson:"hash_after" json:"hashAfter"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
}
