// Package gemini implements the chance provider backed by the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
	"github.com/Tjindl/HackTheCoast-sub000/internal/chance"
	"github.com/Tjindl/HackTheCoast-sub000/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Assessor renders a (student, award) pair into an advisory prompt and parses
// the strict-JSON reply into a chance assessment.
type Assessor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAssessor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Assessor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Assessor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (s *Assessor) Assess(ctx context.Context, p *award.StudentProfile, a *award.Award) (*chance.Assessment, error) {
	if p == nil {
		return nil, fmt.Errorf("student profile is required")
	}
	if a == nil {
		return nil, fmt.Errorf("award is required")
	}

	prompt := buildPrompt(renderProfile(p), renderAward(a))

	s.logger.Debug("gemini generate content request",
		zap.String("award_id", a.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.String("award_id", a.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return assessment, nil
}

func buildPrompt(profileBlock, awardBlock string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Student:\n{{STUDENT_PROFILE}}\n\nAward:\n{{AWARD_DETAILS}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{STUDENT_PROFILE}}", profileBlock)
	prompt = strings.ReplaceAll(prompt, "{{AWARD_DETAILS}}", awardBlock)
	return prompt
}

func renderProfile(p *award.StudentProfile) string {
	indigenous := yesNo(p.IndigenousStatus)
	if p.IndigenousStatus && p.IndigenousGroup != "" {
		indigenous = fmt.Sprintf("Yes (%s)", p.IndigenousGroup)
	}

	affiliations := strings.Join(p.ActiveAffiliations(), ", ")
	if affiliations == "" {
		affiliations = "None"
	}

	lines := []string{
		"- Faculty: " + orUnspecified(p.Faculty),
		"- Year: " + orUnspecifiedInt(p.Year),
		"- Program: " + orUnspecified(p.Program),
		"- GPA: " + orUnspecifiedFloat(p.GPA),
		"- Campus: " + p.Campus,
		"- Citizenship: " + p.CitizenshipStatus,
		"- Indigenous Status: " + indigenous,
		"- Has Disability: " + yesNo(p.HasDisability),
		"- Gender: " + orUnspecified(p.Gender),
		"- Has Financial Need: " + yesNo(p.HasFinancialNeed),
		"- Has Student Loan: " + yesNo(p.HasStudentLoan),
		"- Family Income: " + orUnspecifiedDollar(p.FamilyIncome),
		"- Part-Time Student: " + yesNo(p.PartTimeStudent),
		"- Former Youth in Care: " + yesNo(p.FormerYouthInCare),
		"- Home Region: " + orUnspecified(p.HomeRegion),
		"- School District: " + orUnspecified(p.SchoolDistrict),
		"- Affiliations: " + affiliations,
	}
	return strings.Join(lines, "\n")
}

func renderAward(a *award.Award) string {
	eligibility, err := json.MarshalIndent(a.Eligibility, "", "  ")
	if err != nil {
		eligibility = []byte("{}")
	}

	lines := []string{
		"- Name: " + a.Name,
		"- Type: " + a.Type,
		"- Amount: " + a.Amount.Display(),
		"- Category: " + a.Category,
		"- Description: " + a.Description,
		"- Eligibility Requirements: " + string(eligibility),
	}
	if len(a.RequiredDocumentation) > 0 {
		lines = append(lines, "- Required Documentation: "+strings.Join(a.RequiredDocumentation, ", "))
	}
	return strings.Join(lines, "\n")
}

// responsePayload is the wire shape of a reply. Advice stays untyped because
// the model sometimes returns it as a list of lines.
type responsePayload struct {
	ChanceLevel      string   `json:"chanceLevel"`
	ChancePercentage *float64 `json:"chancePercentage"`
	KeyFactors       []string `json:"keyFactors"`
	Advice           any      `json:"advice"`
	Summary          string   `json:"summary"`
}

func parseResponse(raw string) (*chance.Assessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var payload responsePayload
	cfg := &mapstructure.DecoderConfig{
		Result:           &payload,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	level := chance.Level(strings.ToUpper(strings.TrimSpace(payload.ChanceLevel)))
	if !level.Valid() {
		return nil, fmt.Errorf("gemini response contains unknown chance level: %q", payload.ChanceLevel)
	}

	if payload.ChancePercentage == nil {
		return nil, fmt.Errorf("gemini response is missing a numeric chancePercentage")
	}
	pct := int(math.Round(*payload.ChancePercentage))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	factors := make([]string, 0, len(payload.KeyFactors))
	for _, factor := range payload.KeyFactors {
		if factor = strings.TrimSpace(factor); factor != "" {
			factors = append(factors, factor)
		}
	}
	if len(factors) > 3 {
		factors = factors[:3]
	}

	return &chance.Assessment{
		Success:          true,
		ChanceLevel:      level,
		ChancePercentage: pct,
		KeyFactors:       factors,
		Advice:           coerceText(payload.Advice),
		Summary:          strings.TrimSpace(payload.Summary),
		Source:           "gemini",
	}, nil
}

// extractJSON strips markdown fences and surrounding prose, keeping the first
// JSON object found in the response.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceText renders freeform guidance as a newline-joined text block even
// when the model returns it as a list.
func coerceText(v any) string {
	if list, ok := v.([]any); ok {
		lines := make([]string, 0, len(list))
		for _, item := range list {
			if line := coerceString(item); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	}
	return coerceString(v)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func orUnspecifiedInt(v int) string {
	if v <= 0 {
		return "Not specified"
	}
	return strconv.Itoa(v)
}

func orUnspecifiedFloat(v float64) string {
	if v <= 0 {
		return "Not specified"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orUnspecifiedDollar(v float64) string {
	if v <= 0 {
		return "Not specified"
	}
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}
