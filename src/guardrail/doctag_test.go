package guardrail

import "testing"

func TestParseTags_AllTagsAnyOrder(t *testing.T) {
	text := `
 * some prose before the tags
 * @failure C
 * more prose in between
 * @what A
 * @why B
`
	tags := ParseTags(text)

	want := map[string]string{"what": "A", "why": "B", "failure": "C"}
	for k, v := range want {
		if tags[k] != v {
			t.Errorf("tags[%q] = %q, want %q", k, tags[k], v)
		}
	}
	if len(tags) != 3 {
		t.Errorf("got %d tags, want 3: %v", len(tags), tags)
	}
}

func TestParseTags_MissingTag(t *testing.T) {
	tags := ParseTags("* @what Checks X\n* @why Because Y\n")

	if tags["what"] != "Checks X" {
		t.Errorf("what = %q", tags["what"])
	}
	if tags["why"] != "Because Y" {
		t.Errorf("why = %q", tags["why"])
	}
	if _, ok := tags["failure"]; ok {
		t.Errorf("failure should be absent, got %q", tags["failure"])
	}
}

func TestParseTags_EmptyInput(t *testing.T) {
	tags := ParseTags("")
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestParseTags_TagNamePrefixDoesNotMatch(t *testing.T) {
	tags := ParseTags("* @whatever nope\n* @what yes\n")
	if tags["what"] != "yes" {
		t.Errorf("what = %q, want %q", tags["what"], "yes")
	}
}

func TestParseTags_FirstOccurrenceWins(t *testing.T) {
	tags := ParseTags("* @what first\n* @what second\n")
	if tags["what"] != "first" {
		t.Errorf("what = %q, want %q", tags["what"], "first")
	}
}

func TestParseTags_LineCommentDecoration(t *testing.T) {
	tags := ParseTags("// @what from a line comment\n")
	if tags["what"] != "from a line comment" {
		t.Errorf("what = %q", tags["what"])
	}
}

func TestLeadingDocBlock_BlockComment(t *testing.T) {
	src := []byte(`/*
 * @what Checks X
 * @why Because Y
 */

package foo
`)
	block := LeadingDocBlock(src)
	tags := ParseTags(block)
	if tags["what"] != "Checks X" || tags["why"] != "Because Y" {
		t.Errorf("tags = %v", tags)
	}
}

func TestLeadingDocBlock_LineComments(t *testing.T) {
	src := []byte("// @what line style\n// @failure boom\npackage foo\n")
	tags := ParseTags(LeadingDocBlock(src))
	if tags["what"] != "line style" || tags["failure"] != "boom" {
		t.Errorf("tags = %v", tags)
	}
}

func TestLeadingDocBlock_OnlyFirstBlock(t *testing.T) {
	src := []byte(`/* @what first block */

package foo

/* @why second block should be ignored */
`)
	tags := ParseTags(LeadingDocBlock(src))
	if tags["what"] != "first block" {
		t.Errorf("what = %q", tags["what"])
	}
	if _, ok := tags["why"]; ok {
		t.Errorf("why should be absent, got %q", tags["why"])
	}
}

func TestLeadingDocBlock_NoComment(t *testing.T) {
	if got := LeadingDocBlock([]byte("package foo\n")); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := LeadingDocBlock(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
