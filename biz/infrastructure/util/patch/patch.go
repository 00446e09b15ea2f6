package patch

import (
	"errors"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var ErrPatchApply = errors.New("patch apply failed")

// Patcher 把一条编辑记录套用到文本上
// 全量记录直接替换，增量记录是diff-match-patch的patch文本
type Patcher struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func New() *Patcher {
	return &Patcher{dmp: diffmatchpatch.New()}
}

// Apply 应用一条增量patch
func (p *Patcher) Apply(base, patchText string) (string, error) {
	patches, err := p.dmp.PatchFromText(patchText)
	if err != nil {
		return "", err
	}
	result, applied := p.dmp.PatchApply(patches, base)
	for _, ok := range applied {
		if !ok {
			return "", ErrPatchApply
		}
	}
	return result, nil
}

// Make 根据前后文本生成patch文本（客户端增量的服务端等价实现，测试用）
func (p *Patcher) Make(before, after string) string {
	patches := p.dmp.PatchMake(before, after)
	return p.dmp.PatchToText(patches)
}
