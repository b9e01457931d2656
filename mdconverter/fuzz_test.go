package mdconverter

import (
	"testing"

	"github.com/avelkov/draft-html-converter/converter"
)

func FuzzConvertMarkdown(f *testing.F) {
	seeds := []string{
		"",
		"Hello World",
		"**bold** *italic* ~~strike~~",
		"# Heading\n\n- one\n- two\n  - nested",
		"| A | B |\n| --- | --- |\n| 1 | 2 |",
		"a <u>under</u> b <span style=\"text-align: right\">right</span>",
		"<table><tr><td>X</td></tr></table>",
		"![caption](https://cdn.example.com/a.jpg)",
		"- [ ] open\n- [x] done",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	conv, err := New(converter.Config{})
	if err != nil {
		f.Fatalf("failed to create converter: %v", err)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		result, err := conv.Convert(markdown)
		if err != nil {
			t.Fatalf("convert returned error: %v", err)
		}

		if len(result.Content.Blocks) == 0 {
			t.Fatal("content state has no blocks")
		}
		for _, block := range result.Content.Blocks {
			for _, r := range block.EntityRanges {
				if _, ok := result.Content.Entity(r); !ok {
					t.Fatalf("entity range key %d has no entity", r.Key)
				}
			}
		}
	})
}
