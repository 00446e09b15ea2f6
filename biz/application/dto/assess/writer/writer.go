package writer

// WritingStep 编辑记录的线上编码
type WritingStep struct {
	Timestamp  int64  `form:"timestamp" json:"timestamp" query:"timestamp" mapstructure:"timestamp"`
	Content    string `form:"content" json:"content" query:"content" mapstructure:"content"`
	IsDelta    bool   `form:"is_delta" json:"is_delta" query:"is_delta" mapstructure:"is_delta"`
	HashBefore string `form:"hash_before" json:"hash_before" query:"hash_before" mapstructure:"hash_before"`
	HashAfter  string `form:"hash_after" json:"hash_after" query:"hash_after" mapstructure:"hash_after"`
}

type GetDataReq struct {
}

type GetDataResp struct {
	Task        TaskInfo       `json:"task"`
	Preferences Preferences    `json:"preferences"`
	Essay       EssayInfo      `json:"essay"`
	Notes       []NoteInfo     `json:"notes"`
	Resources   []ResourceInfo `json:"resources"`
}

type TaskInfo struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	WriterName   string `json:"writer_name"`
	WritingEnd   int64  `json:"writing_end"`
}

type Preferences struct {
	InstructionsZoom float64 `json:"instructions_zoom" mapstructure:"instructions_zoom"`
	EditorZoom       float64 `json:"editor_zoom" mapstructure:"editor_zoom"`
}

type EssayInfo struct {
	Content    string `json:"content"`
	Hash       string `json:"hash"`
	Started    int64  `json:"started"`
	Authorized bool   `json:"authorized"`
}

type NoteInfo struct {
	NoteNo     int     `json:"note_no" mapstructure:"note_no"`
	NoteText   *string `json:"note_text" mapstructure:"note_text"`
	LastChange int64   `json:"last_change" mapstructure:"last_change"`
}

type ResourceInfo struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// GetUpdateResp 写作中的轻量刷新，只带任务信息与通知
type GetUpdateResp struct {
	Task   TaskInfo    `json:"task"`
	Alerts []AlertInfo `json:"alerts"`
}

type AlertInfo struct {
	Key     string `json:"key"`
	Message string `json:"message"`
	Time    int64  `json:"time"`
}

type PutStartReq struct {
	Started *int64 `form:"started" json:"started" query:"started"`
}

type PutStepsReq struct {
	Steps []WritingStep `form:"steps" json:"steps" query:"steps"`
}

type PutStepsResp struct {
	Accepted int64 `json:"accepted"`
}

// ChangeEntry 客户端缓冲区里一条未发送的变更
type ChangeEntry struct {
	Key        string         `form:"key" json:"key" query:"key"`
	ItemKey    string         `form:"item_key" json:"item_key" query:"item_key"`
	Action     string         `form:"action" json:"action" query:"action"`
	ServerTime int64          `form:"server_time" json:"server_time" query:"server_time"`
	Payload    map[string]any `form:"payload" json:"payload" query:"payload"`
}

type PutChangesReq struct {
	Notes       []ChangeEntry `form:"notes" json:"notes" query:"notes"`
	Preferences []ChangeEntry `form:"preferences" json:"preferences" query:"preferences"`
}

// PutChangesResp 值为接受后的持久化key，删除成功时为null
// 未出现的key表示该条未被接受，客户端需要稍后重发
type PutChangesResp struct {
	Notes       map[string]*string `json:"notes"`
	Preferences map[string]*string `json:"preferences"`
}

type PutFinalReq struct {
	Steps      []WritingStep `form:"steps" json:"steps" query:"steps"`
	Content    *string       `form:"content" json:"content" query:"content"`
	Hash       *string       `form:"hash" json:"hash" query:"hash"`
	Authorized *bool         `form:"authorized" json:"authorized" query:"authorized"`
}

type GetFileResp struct {
	Url string `json:"url"`
}
