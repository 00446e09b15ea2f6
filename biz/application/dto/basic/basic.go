package basic

type Response struct {
	Code int64  `form:"code" json:"code" query:"code"`
	Msg  string `form:"msg" json:"msg" query:"msg"`
}

// UserMeta 从请求token中解析出的身份信息
// 写手打开编辑器时携带 userId 和 itemKey
// 批改人打开批改端时携带 correctorKey；复核与缝合裁决模式下 correctorKey 为空
type UserMeta struct {
	UserId           string `json:"userId"`
	TaskKey          string `json:"taskKey"`
	ItemKey          string `json:"itemKey"`
	CorrectorKey     string `json:"correctorKey"`
	IsReview         bool   `json:"isReview"`
	IsStitchDecision bool   `json:"isStitchDecision"`
}

func (m *UserMeta) GetUserId() string {
	if m == nil {
		return ""
	}
	return m.UserId
}

func (m *UserMeta) GetCorrectorKey() string {
	if m == nil {
		return ""
	}
	return m.CorrectorKey
}

func (m *UserMeta) GetItemKey() string {
	if m == nil {
		return ""
	}
	return m.ItemKey
}
