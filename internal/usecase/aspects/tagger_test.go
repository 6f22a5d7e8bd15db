package aspects

import (
	"reflect"
	"testing"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

func TestTag(t *testing.T) {
	tagger := NewTagger()

	tests := []struct {
		name string
		text string
		want []entities.AspectType
	}{
		{
			name: "audio complaint",
			text: "The audio is way too quiet in the second half",
			want: []entities.AspectType{entities.AspectAudio},
		},
		{
			name: "stem tolerant editing",
			text: "The editing on this one was superb",
			want: []entities.AspectType{entities.AspectProduction},
		},
		{
			name: "inflected sound",
			text: "It sounds muffled on my headphones",
			want: []entities.AspectType{entities.AspectAudio},
		},
		{
			name: "pacing",
			text: "Felt a bit rushed towards the end",
			want: []entities.AspectType{entities.AspectPacing},
		},
		{
			name: "multiple aspects",
			text: "Great topic but the mic quality ruined it",
			want: []entities.AspectType{entities.AspectContent, entities.AspectAudio, entities.AspectProduction},
		},
		{
			name: "presenter",
			text: "The presenter has such great energy",
			want: []entities.AspectType{entities.AspectPresenter},
		},
		{
			name: "no aspects",
			text: "First!",
			want: nil,
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
		{
			name: "case insensitive",
			text: "TERRIBLE AUDIO",
			want: []entities.AspectType{entities.AspectAudio},
		},
		{
			name: "word boundary holds",
			text: "I celebrated my graduation today",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Tag(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tag(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTagDeterministicOrder(t *testing.T) {
	tagger := NewTagger()
	text := "The presenter rushed through the topic and the sound kept cutting out"

	first := tagger.Tag(text)
	for i := 0; i < 10; i++ {
		if got := tagger.Tag(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tag ordering changed between calls: %v vs %v", first, got)
		}
	}

	// Fixed enum order, not match order.
	want := []entities.AspectType{entities.AspectContent, entities.AspectAudio, entities.AspectPacing, entities.AspectPresenter}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("Tag() = %v, want %v", first, want)
	}
}
