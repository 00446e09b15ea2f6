package textproc

import "testing"

func TestProcessNumbersWordsAcrossParagraphs(t *testing.T) {
	got := Process("hello world\n\nsecond line")
	want := `<p-word p="1"><w-word w="1">hello</w-word> <w-word w="2">world</w-word></p-word>` +
		`<p-word p="2"><w-word w="3">second</w-word> <w-word w="4">line</w-word></p-word>`
	if got != want {
		t.Errorf("Process() = %q, want %q", got, want)
	}
}

func TestProcessEmptyText(t *testing.T) {
	if got := Process(""); got != "" {
		t.Errorf("Process(\"\") = %q, want empty", got)
	}
}
