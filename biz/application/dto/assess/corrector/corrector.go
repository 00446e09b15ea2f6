package corrector

// ChangeEntry 客户端缓冲区里一条未发送的变更
type ChangeEntry struct {
	Key        string         `form:"key" json:"key" query:"key"`
	ItemKey    string         `form:"item_key" json:"item_key" query:"item_key"`
	Action     string         `form:"action" json:"action" query:"action"`
	ServerTime int64          `form:"server_time" json:"server_time" query:"server_time"`
	Payload    map[string]any `form:"payload" json:"payload" query:"payload"`
}

// CommentPayload 批注的保存载荷
type CommentPayload struct {
	Key           string           `json:"key" mapstructure:"key"`
	ItemKey       string           `json:"item_key" mapstructure:"item_key"`
	CorrectorKey  string           `json:"corrector_key" mapstructure:"corrector_key"`
	StartPosition int              `json:"start_position" mapstructure:"start_position"`
	EndPosition   int              `json:"end_position" mapstructure:"end_position"`
	ParentNumber  int              `json:"parent_number" mapstructure:"parent_number"`
	Comment       string           `json:"comment" mapstructure:"comment"`
	Rating        string           `json:"rating" mapstructure:"rating"`
	Marks         []map[string]any `json:"marks" mapstructure:"marks"`
}

// PointsPayload 评分的保存载荷
type PointsPayload struct {
	Key          string  `json:"key" mapstructure:"key"`
	ItemKey      string  `json:"item_key" mapstructure:"item_key"`
	CorrectorKey string  `json:"corrector_key" mapstructure:"corrector_key"`
	CommentKey   string  `json:"comment_key" mapstructure:"comment_key"`
	CriterionKey string  `json:"criterion_key" mapstructure:"criterion_key"`
	Points       float64 `json:"points" mapstructure:"points"`
}

// SummaryPayload 总评的保存载荷
type SummaryPayload struct {
	ItemKey               string   `json:"item_key" mapstructure:"item_key"`
	CorrectorKey          string   `json:"corrector_key" mapstructure:"corrector_key"`
	Text                  *string  `json:"text" mapstructure:"text"`
	Points                *float64 `json:"points" mapstructure:"points"`
	GradeKey              *string  `json:"grade_key" mapstructure:"grade_key"`
	IsAuthorized          bool     `json:"is_authorized" mapstructure:"is_authorized"`
	IncludeComments       *int     `json:"include_comments" mapstructure:"include_comments"`
	IncludeCommentRatings *int     `json:"include_comment_ratings" mapstructure:"include_comment_ratings"`
	IncludeCommentPoints  *int     `json:"include_comment_points" mapstructure:"include_comment_points"`
	IncludeCriteriaPoints *int     `json:"include_criteria_points" mapstructure:"include_criteria_points"`
}

type PutChangesReq struct {
	Comments    []ChangeEntry `form:"comments" json:"comments" query:"comments"`
	Points      []ChangeEntry `form:"points" json:"points" query:"points"`
	Summaries   []ChangeEntry `form:"summaries" json:"summaries" query:"summaries"`
	Preferences []ChangeEntry `form:"preferences" json:"preferences" query:"preferences"`
}

// PutChangesResp 临时key到持久化key的映射，删除成功为null
// 未出现的key表示该条未被接受，客户端需要稍后重发
type PutChangesResp struct {
	Comments    map[string]*string `json:"comments"`
	Points      map[string]*string `json:"points"`
	Summaries   map[string]*string `json:"summaries"`
	Preferences map[string]*string `json:"preferences"`
}

type GetDataResp struct {
	Task        TaskInfo        `json:"task"`
	Settings    SettingsInfo    `json:"settings"`
	Preferences PreferencesInfo `json:"preferences"`
	Resources   []ResourceInfo  `json:"resources"`
	Levels      []GradeLevel    `json:"levels"`
	Criteria    []Criterion     `json:"criteria"`
	Items       []ItemInfo      `json:"items"`
}

type TaskInfo struct {
	Title         string `json:"title"`
	Instructions  string `json:"instructions"`
	Solution      string `json:"solution"`
	CorrectionEnd int64  `json:"correction_end"`
}

type SettingsInfo struct {
	MutualVisibility    bool    `json:"mutual_visibility"`
	MultiColorHighlight bool    `json:"multi_color_highlight"`
	MaxPoints           int     `json:"max_points"`
	MaxAutoDistance     float64 `json:"max_auto_distance"`
	StitchWhenDistance  bool    `json:"stitch_when_distance"`
	StitchWhenDecimals  bool    `json:"stitch_when_decimals"`
	PositiveRating      string  `json:"positive_rating"`
	NegativeRating      string  `json:"negative_rating"`
}

type PreferencesInfo struct {
	EssayPageZoom         float64 `json:"essay_page_zoom" mapstructure:"essay_page_zoom"`
	EssayTextZoom         float64 `json:"essay_text_zoom" mapstructure:"essay_text_zoom"`
	SummaryTextZoom       float64 `json:"summary_text_zoom" mapstructure:"summary_text_zoom"`
	IncludeComments       int     `json:"include_comments" mapstructure:"include_comments"`
	IncludeCommentRatings int     `json:"include_comment_ratings" mapstructure:"include_comment_ratings"`
	IncludeCommentPoints  int     `json:"include_comment_points" mapstructure:"include_comment_points"`
	IncludeCriteriaPoints int     `json:"include_criteria_points" mapstructure:"include_criteria_points"`
}

type ResourceInfo struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

type GradeLevel struct {
	Key       string  `json:"key"`
	Title     string  `json:"title"`
	MinPoints float64 `json:"min_points"`
}

type Criterion struct {
	Key          string  `json:"key"`
	CorrectorKey string  `json:"corrector_key"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Points       float64 `json:"points"`
	IsGeneral    bool    `json:"is_general"`
}

type ItemInfo struct {
	Key                  string `json:"key"`
	Title                string `json:"title"`
	CorrectionAllowed    bool   `json:"correction_allowed"`
	AuthorizationAllowed bool   `json:"authorization_allowed"`
}

type GetItemResp struct {
	Item       ItemInfo        `json:"item"`
	Essay      EssayInfo       `json:"essay"`
	Correctors []CorrectorInfo `json:"correctors"`
	Summaries  []SummaryInfo   `json:"summaries"`
	Comments   []CommentInfo   `json:"comments"`
	Points     []PointsInfo    `json:"points"`
}

type EssayInfo struct {
	Text                 *string  `json:"text"`
	Started              int64    `json:"started"`
	Ended                int64    `json:"ended"`
	Authorized           bool     `json:"authorized"`
	CorrectionFinalized  int64    `json:"correction_finalized"`
	FinalPoints          *float64 `json:"final_points"`
	StitchComment        string   `json:"stitch_comment"`
	StitchRequired       bool     `json:"stitch_required"`
	StitchSuggestedValue *float64 `json:"stitch_suggested_value"`
}

type CorrectorInfo struct {
	ItemKey      string `json:"item_key"`
	CorrectorKey string `json:"corrector_key"`
	Title        string `json:"title"`
	Initials     string `json:"initials"`
	Position     int    `json:"position"`
}

// SummaryInfo 未授权批改人的总评对外只露占位字段
type SummaryInfo struct {
	ItemKey               string   `json:"item_key"`
	CorrectorKey          string   `json:"corrector_key"`
	Text                  *string  `json:"text"`
	Points                *float64 `json:"points"`
	GradeKey              *string  `json:"grade_key"`
	LastChange            *int64   `json:"last_change"`
	IsAuthorized          bool     `json:"is_authorized"`
	IncludeComments       *int     `json:"include_comments"`
	IncludeCommentRatings *int     `json:"include_comment_ratings"`
	IncludeCommentPoints  *int     `json:"include_comment_points"`
	IncludeCriteriaPoints *int     `json:"include_criteria_points"`
}

type CommentInfo struct {
	Key           string           `json:"key"`
	ItemKey       string           `json:"item_key"`
	CorrectorKey  string           `json:"corrector_key"`
	StartPosition int              `json:"start_position"`
	EndPosition   int              `json:"end_position"`
	ParentNumber  int              `json:"parent_number"`
	Comment       string           `json:"comment"`
	Rating        string           `json:"rating"`
	Marks         []map[string]any `json:"marks"`
}

type PointsInfo struct {
	Key          string  `json:"key"`
	ItemKey      string  `json:"item_key"`
	CorrectorKey string  `json:"corrector_key"`
	CommentKey   string  `json:"comment_key"`
	CriterionKey string  `json:"criterion_key"`
	Points       float64 `json:"points"`
}

type PutStitchReq struct {
	FinalPoints   *float64 `form:"final_points" json:"final_points" query:"final_points"`
	GradeKey      string   `form:"grade_key" json:"grade_key" query:"grade_key"`
	StitchComment string   `form:"stitch_comment" json:"stitch_comment" query:"stitch_comment"`
	Finalize      bool     `form:"finalize" json:"finalize" query:"finalize"`
}

type GetFileResp struct {
	Url string `json:"url"`
}
