package topics

import (
	"context"
	"reflect"
	"testing"
)

var feedbackCorpus = []string{
	"The audio mix sounds fantastic tonight",
	"Audio quality blew me away honestly",
	"Crisp audio and clean mastering here",
	"That pasta recipe looks delicious",
	"Tried the recipe yesterday, pasta came out perfect",
	"Recipe steps were easy to follow",
	"The pasta sauce recipe needs garlic",
	"Random unrelated musing entirely",
	"Audio crackles near the ending sadly",
	"Totally different remark altogether",
}

func TestCluster_GroupsByAnchorTerms(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	result, err := c.Cluster(context.Background(), feedbackCorpus)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}

	wantAssignments := []int{0, 0, 0, 1, 1, 1, 1, Unclustered, 0, Unclustered}
	if !reflect.DeepEqual(result.Assignments, wantAssignments) {
		t.Errorf("Assignments = %v, want %v", result.Assignments, wantAssignments)
	}

	if result.NumClusters() != 2 {
		t.Fatalf("NumClusters() = %d, want 2", result.NumClusters())
	}
	if result.Names[0] != "Audio" {
		t.Errorf("Names[0] = %q, want Audio", result.Names[0])
	}
	if result.Names[1] != "Recipe" {
		t.Errorf("Names[1] = %q, want Recipe", result.Names[1])
	}
	if result.Keywords[0][0] != "audio" {
		t.Errorf("Keywords[0][0] = %q, want audio", result.Keywords[0][0])
	}
	if result.Keywords[1][0] != "recipe" {
		t.Errorf("Keywords[1][0] = %q, want recipe", result.Keywords[1][0])
	}
	for i, phrase := range result.Phrases {
		if phrase == "" {
			t.Errorf("Phrases[%d] is empty", i)
		}
	}
}

func TestCluster_Deterministic(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	first, err := c.Cluster(context.Background(), feedbackCorpus)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Cluster(context.Background(), feedbackCorpus)
		if err != nil {
			t.Fatalf("cluster failed on repeat: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestCluster_EveryCommentCountedOnce(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	result, err := c.Cluster(context.Background(), feedbackCorpus)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}

	if len(result.Assignments) != len(feedbackCorpus) {
		t.Fatalf("len(Assignments) = %d, want %d", len(result.Assignments), len(feedbackCorpus))
	}

	sizes := make(map[int]int)
	for _, a := range result.Assignments {
		if a != Unclustered && (a < 0 || a >= result.NumClusters()) {
			t.Fatalf("assignment %d out of range [0,%d)", a, result.NumClusters())
		}
		sizes[a]++
	}
	for cluster, size := range sizes {
		if cluster == Unclustered {
			continue
		}
		if size < 2 {
			t.Errorf("cluster %d has %d members, below minimum size 2", cluster, size)
		}
	}
}

func TestCluster_FirstSeenIndexOrder(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	result, err := c.Cluster(context.Background(), feedbackCorpus)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}

	// The first comment assigned to cluster k must appear before the
	// first comment assigned to cluster k+1.
	firstSeen := make([]int, result.NumClusters())
	for i := range firstSeen {
		firstSeen[i] = -1
	}
	for i, a := range result.Assignments {
		if a != Unclustered && firstSeen[a] == -1 {
			firstSeen[a] = i
		}
	}
	for k := 1; k < len(firstSeen); k++ {
		if firstSeen[k-1] >= firstSeen[k] {
			t.Errorf("cluster %d first seen at %d, cluster %d at %d; want strictly increasing",
				k-1, firstSeen[k-1], k, firstSeen[k])
		}
	}
}

func TestCluster_SmallCorpus(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	texts := []string{
		"Wonderful explanation throughout",
		"Audio felt muffled",
		"Loved the pacing",
		"More examples would help",
	}
	result, err := c.Cluster(context.Background(), texts)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}
	if result.NumClusters() != 0 {
		t.Errorf("NumClusters() = %d, want 0 for corpus below minimum", result.NumClusters())
	}
	if len(result.Assignments) != len(texts) {
		t.Fatalf("len(Assignments) = %d, want %d", len(result.Assignments), len(texts))
	}
	for i, a := range result.Assignments {
		if a != Unclustered {
			t.Errorf("Assignments[%d] = %d, want Unclustered", i, a)
		}
	}
}

func TestCluster_InsufficientVocabulary(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	texts := []string{
		"alpha beta", "alpha beta", "beta alpha",
		"alpha alpha", "beta beta", "alpha beta",
	}
	result, err := c.Cluster(context.Background(), texts)
	if err != nil {
		t.Fatalf("cluster failed: %v", err)
	}
	if result.NumClusters() != 0 {
		t.Errorf("NumClusters() = %d, want 0 for thin vocabulary", result.NumClusters())
	}
}

func TestCluster_CancelledContext(t *testing.T) {
	c := NewLexicalClusterer(2, 8, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Cluster(ctx, feedbackCorpus); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestGenerateTopicPhrase(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		kws     []string
		samples []string
		want    string
	}{
		{
			name:  "descriptive theme name wins",
			topic: "Sound Quality",
			kws:   []string{"bass"},
			want:  "Sound Quality",
		},
		{
			name:  "frequent bigram wins over keyword",
			topic: "Mix",
			kws:   []string{"mix"},
			samples: []string{
				"guitar solo was incredible",
				"that guitar solo though",
				"guitar solo forever",
			},
			want: "Guitar Solo",
		},
		{
			name:  "keyword fallback",
			topic: "Mix",
			kws:   []string{"mix", "bass"},
			want:  "Mix",
		},
		{
			name: "general fallback",
			want: "General Discussion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateTopicPhrase(tt.topic, tt.kws, tt.samples); got != tt.want {
				t.Errorf("generateTopicPhrase() = %q, want %q", got, tt.want)
			}
		})
	}
}
