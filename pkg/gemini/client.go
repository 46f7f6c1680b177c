package gemini

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/motlib/library-service/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	APIKey  string `yaml:"apiKey" envconfig:"GEMINI_API_KEY"`
	Model   string `yaml:"model" envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	BaseURL string `yaml:"baseUrl" envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
}

// Client generates candidate books through the Generative Language API.
// The response is constrained to a fixed JSON schema so a successful
// call always parses into a draft list.
type Client struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Minute},
		log:    log.Named("gemini"),
	}
}

// responseSchema mirrors model.BookDraft: every generated entry carries
// the full book field set.
const responseSchema = `{
  "type": "ARRAY",
  "items": {
    "type": "OBJECT",
    "properties": {
      "title":     {"type": "STRING", "description": "The title of the book."},
      "author":    {"type": "STRING", "description": "The name of the author."},
      "publisher": {"type": "STRING", "description": "The publisher of the book."},
      "category":  {"type": "STRING", "description": "The book's category, such as Logistics, Urban Planning, Engineering, or Policy."},
      "year":      {"type": "INTEGER", "description": "The year the book was published."},
      "shelfNo":   {"type": "STRING", "description": "A fictional shelf number, e.g., A1-01."},
      "isbn":      {"type": "STRING", "description": "The ISBN of the book."},
      "quantity":  {"type": "INTEGER", "description": "The total number of copies for this book, e.g., between 1 and 10."}
    },
    "required": ["title", "author", "publisher", "category", "year", "shelfNo", "isbn", "quantity"]
  }
}`

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string              `json:"responseMimeType"`
	ResponseSchema   jsoniter.RawMessage `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) GenerateCandidates(ctx context.Context, count int) ([]model.BookDraft, error) {
	if c.cfg.APIKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	prompt := fmt.Sprintf("Generate a list of %d realistic, fictional book titles suitable for a Ministry of Transport library. "+
		"The topics should revolve around transportation, logistics, urban planning, and civil engineering. "+
		"Also include a realistic quantity for each book. Provide the response as a JSON array.", count)

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   jsoniter.RawMessage(responseSchema),
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey),
		bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("generateContent", zap.Int("status", resp.StatusCode))
		return nil, errors.Errorf("generateContent: unexpected status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("generateContent: empty response")
	}

	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	var drafts []model.BookDraft
	if err := json.Unmarshal([]byte(text), &drafts); err != nil {
		return nil, errors.Wrap(err, "response is not a valid book array")
	}
	if drafts == nil {
		return nil, errors.New("response is not a valid book array")
	}
	return drafts, nil
}
