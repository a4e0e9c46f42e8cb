// Package gemini adapts the Gemini API to the tutor chat and crop scan
// screens. Failures never surface as errors: each operation degrades to a
// fixed reply so the screens always have something to show.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"agrifields/internal/domain"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Turn is one prior message of the conversation.
type Turn struct {
	Sender domain.Sender
	Text   string
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor answers tutor questions and analyzes crop photos.
type Advisor struct {
	models contentGenerator
	model  string
	logger zerolog.Logger
}

// NewAdvisor builds an Advisor. An empty API key yields an advisor that
// answers every call with the demo-mode reply.
func NewAdvisor(ctx context.Context, opts Options) (*Advisor, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	a := &Advisor{
		model:  model,
		logger: opts.Logger.With().Str("component", "gemini").Str("model", model).Logger(),
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		a.logger.Warn().Msg("GEMINI_API_KEY not set; tutor and crop doctor run in demo mode")
		return a, nil
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout * time.Second}
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimRight(opts.BaseURL, "/"); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	a.models = client.Models
	return a, nil
}

// Live reports whether a credential is configured.
func (a *Advisor) Live() bool {
	return a.models != nil
}

// Model returns the configured Gemini model identifier.
func (a *Advisor) Model() string {
	return a.model
}

// Chat sends history followed by message and returns the tutor's reply.
func (a *Advisor) Chat(ctx context.Context, message string, lang domain.Language, history []Turn) string {
	if !a.Live() {
		return ChatDemoReply
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Sender == domain.SenderAI {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := a.models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(lang), genai.RoleUser),
		Temperature:       genai.Ptr[float32](chatTemperature),
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("language", string(lang)).Msg("gemini chat failed")
		return ChatOfflineReply
	}
	if text := responseText(resp); text != "" {
		return text
	}
	return ChatEmptyReply
}

// AnalyzeImage diagnoses a crop photo given as base64, optionally as a
// data URI.
func (a *Advisor) AnalyzeImage(ctx context.Context, image string, lang domain.Language) string {
	if !a.Live() {
		return ImageDemoReply
	}
	data, mime, err := DecodeImage(image)
	if err != nil {
		a.logger.Warn().Err(err).Msg("gemini image payload rejected")
		return ImageFailedReply
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(imagePrompt(lang)),
		}, genai.RoleUser),
	}
	resp, err := a.models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		a.logger.Warn().Err(err).Int("bytes", len(data)).Msg("gemini vision failed")
		return ImageFailedReply
	}
	if text := responseText(resp); text != "" {
		return text
	}
	return ImageEmptyReply
}

// DecodeImage strips an optional data:<mime>;base64, prefix and decodes the
// payload. The mime type defaults to image/jpeg.
func DecodeImage(image string) ([]byte, string, error) {
	payload := strings.TrimSpace(image)
	mime := defaultImageMime
	if strings.HasPrefix(payload, "data:") {
		header, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", errors.New("data uri without payload")
		}
		if declared, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); declared != "" {
			mime = declared
		}
		payload = rest
	}
	if payload == "" {
		return nil, "", errors.New("empty image payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return data, mime, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return strings.TrimSpace(resp.Text())
}
