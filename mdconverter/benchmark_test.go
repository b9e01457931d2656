package mdconverter

import (
	"testing"

	"github.com/avelkov/draft-html-converter/converter"
)

func BenchmarkConvertMarkdown(b *testing.B) {
	conv, err := New(converter.Config{})
	if err != nil {
		b.Fatalf("failed to create converter: %v", err)
	}

	input := `# Heading

This is **bold** text with [link](https://example.com) and more.

> Quoted line

- [ ] Task one
- [x] Task two

| Name | Value |
| --- | --- |
| A | 1 |
| B | 2 |

![caption](https://cdn.example.com/a.jpg)
`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := conv.Convert(input); err != nil {
			b.Fatalf("convert failed: %v", err)
		}
	}
}
