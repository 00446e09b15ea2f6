package consts

// 数据库相关
const (
	ID           = "_id"
	ItemKey      = "item_key"
	CorrectorKey = "corrector_key"
	WriterKey    = "writer_key"
	TaskKey      = "task_key"
	HashAfter    = "hash_after"
	NoteNo       = "note_no"
	CreateTime   = "create_time"
	Timestamp    = "timestamp"
)

// 批改评语的评价标记
const (
	RatingCardinal  = "cardinal"  // 重大失误
	RatingExcellent = "excellent" // 亮点
)

// 变更条目的动作
const (
	ActionSave   = "save"
	ActionDelete = "delete"
)

// 任务资源的类型
const (
	ResourceTypeFile = "file"
	ResourceTypeURL  = "url"
)

// 默认值
const (
	DefaultServiceVersion = 1
	StitchLockTTL         = 10  // 缝合裁决锁的TTL（秒）
	StitchLockWait        = 100 // 获取锁的最长等待（毫秒数*100）
)
