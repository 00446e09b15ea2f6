package textproc

import (
	"fmt"
	"strings"
)

// Process 把写手的纯文本整理成批改端展示用的编号文本
// 每段一个<p>，每个词带全局序号，批注用词序号锚定区间
func Process(text string) string {
	var b strings.Builder
	word := 0
	para := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		para++
		b.WriteString(fmt.Sprintf(`<p-word p="%d">`, para))
		for i, w := range strings.Fields(line) {
			word++
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(fmt.Sprintf(`<w-word w="%d">%s</w-word>`, word, w))
		}
		b.WriteString("</p-word>")
	}
	return b.String()
}
