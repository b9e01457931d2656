package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStrayFigureText(t *testing.T) {
	clean := `<figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"><figcaption>A caption</figcaption></figure></figure>`

	tests := []struct {
		name        string
		input       string
		expected    string
		wantChanged bool
	}{
		{
			name:        "clean document unchanged",
			input:       clean,
			expected:    clean,
			wantChanged: false,
		},
		{
			name:        "stray text after nested figure",
			input:       `<figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure>stray</figure>`,
			expected:    `<figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure>`,
			wantChanged: true,
		},
		{
			name:        "stray text before nested figure",
			input:       `<figure class="atomic photo-block">stray<figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure>`,
			expected:    `<figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure>`,
			wantChanged: true,
		},
		{
			name:        "stray text on both sides",
			input:       `<figure class="atomic photo-block">before<figure class="content-editor__custom-block photo"><img src="a.jpg"></figure>after</figure>`,
			expected:    `<figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure>`,
			wantChanged: true,
		},
		{
			name:        "surrounding blocks untouched",
			input:       `<p>before</p><figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure>stray</figure><p>after</p>`,
			expected:    `<p>before</p><figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure><p>after</p>`,
			wantChanged: true,
		},
		{
			name:        "multiple figures cleaned in one pass",
			input:       `<figure class="atomic photo-block">x<figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure><figure class="atomic document-block"><figure class="content-editor__custom-block document"><a class="file-name" href="f.pdf" download="f.pdf">f.pdf</a></figure>y</figure>`,
			expected:    `<figure class="atomic photo-block"><figure class="content-editor__custom-block photo"><img src="a.jpg"></figure></figure><figure class="atomic document-block"><figure class="content-editor__custom-block document"><a class="file-name" href="f.pdf" download="f.pdf">f.pdf</a></figure></figure>`,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, changed := cleanStrayFigureText(tt.input)
			assert.Equal(t, tt.expected, cleaned)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestCleanStrayFigureTextIdempotent(t *testing.T) {
	input := `<figure class="atomic photo-block">before<figure class="content-editor__custom-block photo"><img src="a.jpg"></figure>after</figure>`

	once, changed := cleanStrayFigureText(input)
	assert.True(t, changed)

	twice, changed := cleanStrayFigureText(once)
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}
