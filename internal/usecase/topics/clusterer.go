package topics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Unclustered marks comments that belong to no topic cluster.
const Unclustered = -1

const (
	// Corpora smaller than this produce no topics at all.
	minAnalyzableCorpus = 5
	// Distinct non-stopword tokens needed before clustering is worth it.
	minVocabulary = 10

	keywordsPerTopic = 5
	defaultMaxTopics = 8
)

// ClusterResult carries the cluster assignment for every input text plus
// per-cluster descriptors. Assignments[i] is the cluster index for text i,
// or Unclustered. Cluster indexes are assigned in first-seen input order,
// so identical input yields identical output.
type ClusterResult struct {
	Assignments []int
	Keywords    [][]string
	Phrases     []string
	Names       []string
}

// NumClusters returns how many clusters survived.
func (r *ClusterResult) NumClusters() int {
	return len(r.Names)
}

// LexicalClusterer groups comments around shared high-document-frequency
// terms. Each surviving anchor term becomes one cluster; comments
// mentioning several anchors join the strongest one. It needs no model
// downloads and is deterministic for a fixed input ordering.
type LexicalClusterer struct {
	minClusterSize int
	maxTopics      int
	logger         *zap.Logger
}

// NewLexicalClusterer creates a clusterer. minClusterSize below 2 and
// maxTopics below 1 are lifted to their defaults.
func NewLexicalClusterer(minClusterSize, maxTopics int, logger *zap.Logger) *LexicalClusterer {
	if minClusterSize < 2 {
		minClusterSize = 2
	}
	if maxTopics < 1 {
		maxTopics = defaultMaxTopics
	}
	return &LexicalClusterer{
		minClusterSize: minClusterSize,
		maxTopics:      maxTopics,
		logger:         logger,
	}
}

// Cluster assigns every text to at most one cluster. Small corpora and
// corpora with too little vocabulary yield zero clusters, never an error.
func (c *LexicalClusterer) Cluster(ctx context.Context, texts []string) (*ClusterResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(texts) < minAnalyzableCorpus {
		if c.logger != nil {
			c.logger.Info("corpus too small for topic extraction",
				zap.Int("texts", len(texts)),
				zap.Int("minimum", minAnalyzableCorpus),
			)
		}
		return emptyResult(len(texts)), nil
	}

	docTokens := make([][]string, len(texts))
	docSets := make([]map[string]struct{}, len(texts))
	vocabulary := make(map[string]struct{})
	for i, text := range texts {
		tokens := tokenize(text)
		docTokens[i] = tokens
		set := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			set[tok] = struct{}{}
			vocabulary[tok] = struct{}{}
		}
		docSets[i] = set
	}

	if len(vocabulary) < minVocabulary {
		if c.logger != nil {
			c.logger.Info("insufficient vocabulary for topic extraction",
				zap.Int("unique_tokens", len(vocabulary)),
				zap.Int("minimum", minVocabulary),
			)
		}
		return emptyResult(len(texts)), nil
	}

	targetClusters := c.maxTopics
	if natural := max(2, len(texts)/c.minClusterSize); natural < targetClusters {
		targetClusters = natural
	}

	anchors := c.selectAnchors(docSets, targetClusters)
	if len(anchors) == 0 {
		return emptyResult(len(texts)), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := c.buildClusters(texts, docTokens, docSets, anchors)
	if c.logger != nil {
		c.logger.Info("topic extraction complete",
			zap.Int("texts", len(texts)),
			zap.Int("clusters", result.NumClusters()),
			zap.Int("vocabulary", len(vocabulary)),
		)
	}
	return result, nil
}

// selectAnchors picks the top terms by document frequency. Terms that
// cannot reach the minimum cluster size are skipped; ties break
// alphabetically so ranking is stable.
func (c *LexicalClusterer) selectAnchors(docSets []map[string]struct{}, limit int) []string {
	df := make(map[string]int)
	for _, set := range docSets {
		for tok := range set {
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for tok, count := range df {
		if count >= c.minClusterSize {
			terms = append(terms, tok)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func (c *LexicalClusterer) buildClusters(texts []string, docTokens [][]string, docSets []map[string]struct{}, anchors []string) *ClusterResult {
	// Assign each doc to its highest-ranked anchor.
	raw := make([]int, len(texts))
	counts := make([]int, len(anchors))
	for i, set := range docSets {
		raw[i] = Unclustered
		for rank, anchor := range anchors {
			if _, ok := set[anchor]; ok {
				raw[i] = rank
				counts[rank]++
				break
			}
		}
	}

	// Drop clusters that ended up below the minimum size, then reindex
	// survivors in first-seen order.
	assignments := make([]int, len(texts))
	reindex := make(map[int]int)
	var members [][]int
	for i, rank := range raw {
		if rank == Unclustered || counts[rank] < c.minClusterSize {
			assignments[i] = Unclustered
			continue
		}
		idx, ok := reindex[rank]
		if !ok {
			idx = len(members)
			reindex[rank] = idx
			members = append(members, nil)
		}
		assignments[i] = idx
		members[idx] = append(members[idx], i)
	}

	result := &ClusterResult{
		Assignments: assignments,
		Keywords:    make([][]string, len(members)),
		Phrases:     make([]string, len(members)),
		Names:       make([]string, len(members)),
	}

	for idx, docs := range members {
		keywords := clusterKeywords(docs, docTokens)

		memberTexts := make([]string, len(docs))
		for j, d := range docs {
			memberTexts[j] = texts[d]
		}

		name := clusterName(keywords, docs, memberTexts)
		phrase := generateTopicPhrase(name, keywords, memberTexts)

		if len(keywords) == 0 {
			keywords = []string{"general"}
		}

		result.Keywords[idx] = keywords
		result.Phrases[idx] = phrase
		result.Names[idx] = name
	}

	return result
}

// clusterKeywords ranks tokens by total occurrences across the cluster's
// documents, ties alphabetical.
func clusterKeywords(docs []int, docTokens [][]string) []string {
	counts := make(map[string]int)
	for _, d := range docs {
		for _, tok := range docTokens[d] {
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for tok := range counts {
		terms = append(terms, tok)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	keywords := validKeywords(terms)
	if len(keywords) > keywordsPerTopic {
		keywords = keywords[:keywordsPerTopic]
	}
	return keywords
}

// clusterName prefers the top keyword, falls back to theme detection over
// the member texts, then to a positional name.
func clusterName(keywords []string, docs []int, memberTexts []string) string {
	if len(keywords) > 0 {
		return capitalize(keywords[0])
	}

	themeCounts := make(map[string]int)
	for _, text := range memberTexts {
		if theme := detectTheme(text); theme != "" {
			themeCounts[theme]++
		}
	}
	best := ""
	bestCount := 0
	for _, theme := range themeOrder {
		if themeCounts[theme] > bestCount {
			best = theme
			bestCount = themeCounts[theme]
		}
	}
	if best != "" {
		return formatThemeName(best)
	}

	if len(docs) > 0 {
		return fmt.Sprintf("Topic %d", docs[0]+1)
	}
	return "General"
}

func emptyResult(n int) *ClusterResult {
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = Unclustered
	}
	return &ClusterResult{Assignments: assignments}
}
