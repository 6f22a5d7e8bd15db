package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/vidinsight/vidinsight/pkg/config"
)

// HFClient is a minimal client for the Hugging Face inference API,
// used for zero-shot sentiment classification.
type HFClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewHFClient creates a Hugging Face client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewHFClient(cfg *config.HuggingFaceConfig) *HFClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("HF_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("HF_BASE_URL")
		if base == "" {
			base = "https://api-inference.huggingface.co"
		}
	}

	var model string
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	} else {
		model = "facebook/bart-large-mnli"
	}

	timeout := 30 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &HFClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// zeroShotRequest is the shape for zero-shot classification requests
type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// zeroShotResponse carries labels and scores sorted by score descending
type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// Classify runs zero-shot classification over the candidate labels and
// returns the top label with its score.
func (h *HFClient) Classify(ctx context.Context, text string, labels []string) (string, float64, error) {
	reqBody := zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, err
	}

	endpoint := fmt.Sprintf("%s/models/%s", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", 0, fmt.Errorf("hugging face returned status %d", resp.StatusCode)
	}

	var zr zeroShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&zr); err != nil {
		return "", 0, err
	}
	if len(zr.Labels) == 0 || len(zr.Scores) == 0 {
		return "", 0, fmt.Errorf("empty response from hugging face")
	}
	return zr.Labels[0], zr.Scores[0], nil
}
