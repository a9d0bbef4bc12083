package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const (
	geminiModel    = "gemini-2.5-flash"
	maxPostingSize = 20000
)

// ErrExtractionDisabled is returned when no LLM key is configured.
var ErrExtractionDisabled = errors.New("job extraction is not configured")

type LLMService struct {
	Client  llms.Model
	Matcher *MatcherService
	Log     zerolog.Logger
}

// NewLLMService returns a service without a client when apiKey is empty;
// extraction then reports ErrExtractionDisabled.
func NewLLMService(ctx context.Context, apiKey string, matcher *MatcherService, log zerolog.Logger) (*LLMService, error) {
	s := &LLMService{Matcher: matcher, Log: log.With().Str("component", "llm").Logger()}
	if apiKey == "" {
		s.Log.Warn().Msg("GEMINI_API_KEY not set; job extraction disabled")
		return s, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(geminiModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	s.Client = llm
	return s, nil
}

const jobExtractionPrompt = `
You extract job posting data for a job board. Analyse the raw HTML/text below and return the
core details of the posting.

Ignore navigation menus, footers, "similar jobs" lists and advertisements.
Return valid JSON only, not wrapped in markdown, with this shape:
{
    "company_name": "Name of the hiring company",
    "role_title": "Job title",
    "location": "Job location or 'Remote'",
    "description": "Plain-text summary of responsibilities and requirements",
    "tech_stack": ["technologies", "mentioned"],
    "salary_range": "Salary as written in the posting, or null"
}
Use null for anything the posting does not state. Do not guess.

RAW CONTENT:
%s
`

// ExtractJobDetails asks the model for the posting's fields and resolves
// the company name against existing companies.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (*dtos.JobExtraction, error) {
	if s.Client == nil {
		return nil, ErrExtractionDisabled
	}
	rawHTML = truncatePosting(rawHTML, maxPostingSize)

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return nil, fmt.Errorf("generate extraction: %w", err)
	}

	out, err := parseExtraction(resp)
	if err != nil {
		s.Log.Warn().Err(err).Str("raw", resp).Msg("Unparsable extraction")
		return nil, apperr.Validation("the posting could not be parsed into job fields")
	}

	if s.Matcher != nil && out.CompanyName != "" {
		company, err := s.Matcher.FindCompany(ctx, out.CompanyName)
		if err != nil {
			return nil, err
		}
		if company != nil {
			out.CompanyID = &company.ID
		}
	}
	return out, nil
}

// parseExtraction tolerates a markdown fence around the JSON.
func parseExtraction(resp string) (*dtos.JobExtraction, error) {
	body := strings.TrimSpace(resp)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var out dtos.JobExtraction
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// truncatePosting cuts s to at most limit bytes without splitting a rune.
func truncatePosting(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
