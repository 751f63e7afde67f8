package reflow

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReflow_Examples(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"empty", "", 10, ""},
		{"fits on one line", "hello world", 30, "hello world"},
		{"greedy packing", "the quick brown fox jumps over the lazy dog", 10,
			"the quick\n brown fox\n jumps\n over the\n lazy dog"},
		{"exact fit", "abcd efgh", 9, "abcd efgh"},
		{"one over", "abcd efgh", 8, "abcd\n efgh"},
		{"overlong middle token", "hi supercalifragilistic yo", 5, "hi\n supercalifragilistic\n yo"},
		{"overlong first token", "supercalifragilistic yo", 5, "supercalifragilistic\n yo"},
		{"repeated spaces keep empty tokens", "a  b", 2, "a \n b"},
		{"repeated spaces fit", "a  b", 10, "a  b"},
		{"counts runes not bytes", "가나다 라마바 사아자", 7, "가나다 라마바\n 사아자"},
		{"zero width clamps to one", "a b", 0, "a\n b"},
		{"negative width clamps to one", "a b c", -4, "a\n b\n c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reflow(tc.text, tc.width)
			if got != tc.want {
				t.Errorf("Reflow(%q, %d)\nwant: %q\ngot:  %q", tc.text, tc.width, tc.want, got)
			}
		})
	}
}

func TestReflow_EmptyInputAnyWidth(t *testing.T) {
	for _, w := range []int{1, 2, 30, 1000} {
		if got := Reflow("", w); got != "" {
			t.Errorf("width %d: expected empty output, got %q", w, got)
		}
	}
}

func TestReflow_NoSpacesUnchanged(t *testing.T) {
	for _, text := range []string{"a", "abcdefghijklmnopqrstuvwxyz", "기사본문을가져올수없습니다."} {
		for _, w := range []int{1, 3, 10, 100} {
			if got := Reflow(text, w); got != text {
				t.Errorf("Reflow(%q, %d) = %q, want input unchanged", text, w, got)
			}
		}
	}
}

var sampleTexts = []string{
	"the quick brown fox jumps over the lazy dog",
	"정부는 오늘 새로운 경제 정책을 발표했다. 이번 정책은 중소기업 지원과 일자리 창출에 초점을 맞추고 있으며 내년 상반기부터 시행될 예정이다.",
	"short words a b c d e f g h i j k l m n o p",
	"antidisestablishmentarianism is long and so is pneumonoultramicroscopic",
	"double  spaces   here    and there",
	" leading and trailing ",
}

func TestReflow_LineWidthBound(t *testing.T) {
	for _, text := range sampleTexts {
		for _, w := range []int{1, 5, 10, 30, 80} {
			for _, line := range Lines(text, w) {
				if utf8.RuneCountInString(line) <= w {
					continue
				}
				if len(strings.Fields(line)) > 1 {
					t.Errorf("width %d: line %q exceeds width with more than one token", w, line)
				}
			}
		}
	}
}

func TestReflow_PreservesTokens(t *testing.T) {
	for _, text := range sampleTexts {
		for _, w := range []int{1, 7, 30} {
			out := Reflow(text, w)
			if strings.HasSuffix(out, "\n") && !strings.HasSuffix(text, "\n") {
				t.Errorf("unexpected trailing newline in %q", out)
			}
			if joined := strings.ReplaceAll(out, "\n", ""); joined != text {
				t.Errorf("width %d: removing breaks gave %q, want %q", w, joined, text)
			}
			got := strings.Fields(out)
			want := strings.Fields(text)
			if strings.Join(got, "|") != strings.Join(want, "|") {
				t.Errorf("width %d: tokens %v, want %v", w, got, want)
			}
		}
	}
}

func TestLines(t *testing.T) {
	if got := Lines("", 10); got != nil {
		t.Errorf("expected nil lines for empty text, got %v", got)
	}
	got := Lines("the quick brown fox", DefaultWidth)
	if len(got) != 1 || got[0] != "the quick brown fox" {
		t.Errorf("unexpected lines: %q", got)
	}
	if n := len(Lines("the quick brown fox jumps over the lazy dog", 10)); n != 5 {
		t.Errorf("expected 5 lines, got %d", n)
	}
}
