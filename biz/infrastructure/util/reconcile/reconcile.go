package reconcile

import (
	"essay-assess/biz/infrastructure/util/log"
	"essay-assess/biz/infrastructure/util/patch"
)

// Step 一条待核对的写作编辑记录
type Step struct {
	Timestamp  int64
	Content    string
	IsDelta    bool
	HashBefore string
	HashAfter  string
}

// Result 核对结果
// 没有任何记录被接受时 Text/Hash 与输入一致
type Result struct {
	Text     string
	Hash     string
	Accepted []Step
	EndedAt  int64 // 最后一条被接受记录的时间戳，无则为0
}

// HasStepFunc 判断某个hash_after是否已经持久化过
type HasStepFunc func(hashAfter string) bool

// Run 按提交顺序核对一批编辑记录
//
// 客户端可能因为响应丢失而重发已保存的记录，也可能在重发中混入新记录。
// 哈希链是唯一的判断依据：hash_before 与当前哈希一致的记录被接受并前进，
// 不一致的记录被静默跳过，后面的记录仍可能重新接上链。
func Run(text, hash string, candidates []Step, hasStep HasStepFunc) Result {
	p := patch.New()

	currentText := text
	currentHash := hash

	res := Result{}
	for _, step := range candidates {
		if step.HashBefore != currentHash {
			if step.IsDelta {
				// 增量记录不能套用在预期之外的底稿上
				// 该记录可能已经保存过，后面的新记录仍可能接上
				continue
			}
			if hasStep != nil && hasStep(step.HashAfter) {
				// 同一个全量保存不应落库两次
				// hash_after 含时间戳加盐，可作为唯一标识
				continue
			}
			// 全量记录底稿冲突，同样跳过，由客户端下次重发
			continue
		}

		if step.IsDelta {
			applied, err := p.Apply(currentText, step.Content)
			if err != nil {
				log.Error("apply delta step failed, hash_before=%s: %v", step.HashBefore, err)
				continue
			}
			currentText = applied
		} else {
			currentText = step.Content
		}
		currentHash = step.HashAfter

		res.Accepted = append(res.Accepted, step)
		res.EndedAt = step.Timestamp
	}

	res.Text = currentText
	res.Hash = currentHash
	return res
}
