package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlide_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slide   Slide
		wantErr bool
		errMsg  string
	}{
		{
			name:  "title slide",
			slide: Slide{Kind: SlideKindTitle, Title: "Hello", Subtitle: "World"},
		},
		{
			name:  "content slide without bullets",
			slide: Slide{Kind: SlideKindContent, Title: "Empty"},
		},
		{
			name:  "empty title is not checked",
			slide: Slide{Kind: SlideKindContent, Bullets: []Bullet{{Text: ""}}},
		},
		{
			name:    "negative index",
			slide:   Slide{Kind: SlideKindTitle, Index: -1},
			wantErr: true,
			errMsg:  "slide index must be non-negative",
		},
		{
			name:    "title slide with bullets",
			slide:   Slide{Kind: SlideKindTitle, Bullets: []Bullet{{Text: "a"}}},
			wantErr: true,
			errMsg:  "title slide cannot have bullets",
		},
		{
			name:    "content slide with subtitle",
			slide:   Slide{Kind: SlideKindContent, Subtitle: "S"},
			wantErr: true,
			errMsg:  "content slide cannot have a subtitle",
		},
		{
			name:    "negative bullet level",
			slide:   Slide{Kind: SlideKindContent, Bullets: []Bullet{{Text: "a", Level: -1}}},
			wantErr: true,
			errMsg:  "level must be non-negative",
		},
		{
			name:    "unknown kind",
			slide:   Slide{Kind: "chart"},
			wantErr: true,
			errMsg:  "unknown slide kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slide.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSlideKind(t *testing.T) {
	tests := []struct {
		input string
		want  SlideKind
	}{
		{"title", SlideKindTitle},
		{" Title ", SlideKindTitle},
		{"content", SlideKindContent},
		{"CONTENT", SlideKindContent},
		{"", SlideKindContent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSlideKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSlideKind("table")
	assert.True(t, errors.Is(err, ErrUnknownSlideKind))
}

func TestSlideKind_Layout(t *testing.T) {
	assert.Equal(t, LayoutTitle, SlideKindTitle.Layout())
	assert.Equal(t, LayoutTitleAndContent, SlideKindContent.Layout())
}

func TestSlide_SubtitleLines(t *testing.T) {
	s := Slide{Kind: SlideKindTitle, Subtitle: "Questions & Discussion\n\nCoursera"}
	assert.Equal(t, []string{"Questions & Discussion", "", "Coursera"}, s.SubtitleLines())

	empty := Slide{Kind: SlideKindTitle}
	assert.Nil(t, empty.SubtitleLines())
	assert.False(t, empty.HasSubtitle())
}

func TestSlide_BulletTexts(t *testing.T) {
	s := Slide{
		Kind:    SlideKindContent,
		Bullets: []Bullet{{Text: "a"}, {Text: "b", Level: 1}, {Text: "c"}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.BulletTexts())
	assert.Empty(t, (&Slide{}).BulletTexts())
}
