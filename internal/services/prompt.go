package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

//go:embed seeds.yaml
var defaultTemplatesYAML []byte

const (
	SlugSystemRole       = "system.role"
	SlugLessonOutline    = "lesson.outline"
	SlugSlideScript      = "lesson.slide_script"
	SlugSlideOptimize    = "slide.optimize"
	SlugSlideImagePrompt = "slide.image_prompt"
	SlugLessonQuestions  = "lesson.questions"
)

// Used when no system.role template is active in the database.
const fallbackSystemRole = "You are an experienced university lecturer who designs clear, well-structured teaching materials."

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// PromptService renders stored prompt templates. Placeholders use the
// {key} form; placeholders with no matching variable are left intact so a
// missing value is visible downstream instead of silently vanishing.
type PromptService interface {
	Render(ctx context.Context, slug string, vars map[string]string) (string, error)
	BuildFullPrompt(ctx context.Context, slug string, vars map[string]string) (string, error)
	CreateTemplate(ctx context.Context, slug, content string) (*types.PromptTemplate, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, content string, isActive *bool) (*types.PromptTemplate, error)
	ListTemplates(ctx context.Context) ([]*types.PromptTemplate, error)
	DeleteTemplates(ctx context.Context, ids []uuid.UUID) error
	SeedDefaults(ctx context.Context) error
}

type promptService struct {
	log          *logger.Logger
	templateRepo repos.PromptTemplateRepo
}

func NewPromptService(log *logger.Logger, templateRepo repos.PromptTemplateRepo) PromptService {
	return &promptService{
		log:          log.With("service", "PromptService"),
		templateRepo: templateRepo,
	}
}

func (ps *promptService) Render(ctx context.Context, slug string, vars map[string]string) (string, error) {
	tpl, err := ps.templateRepo.GetActiveBySlug(ctx, nil, slug)
	if err != nil {
		return "", fmt.Errorf("Failed to load template %q: %w", slug, err)
	}
	if tpl == nil {
		return "", fmt.Errorf("No active template for slug %q", slug)
	}
	return substitute(tpl.Content, vars), nil
}

// BuildFullPrompt prepends the rendered system.role template to the named
// template. A missing system.role falls back to a built-in role line.
func (ps *promptService) BuildFullPrompt(ctx context.Context, slug string, vars map[string]string) (string, error) {
	body, err := ps.Render(ctx, slug, vars)
	if err != nil {
		return "", err
	}
	role := fallbackSystemRole
	if roleTpl, rErr := ps.templateRepo.GetActiveBySlug(ctx, nil, SlugSystemRole); rErr == nil && roleTpl != nil {
		role = substitute(roleTpl.Content, vars)
	}
	return strings.TrimSpace(role) + "\n\n" + strings.TrimSpace(body), nil
}

func (ps *promptService) CreateTemplate(ctx context.Context, slug, content string) (*types.PromptTemplate, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("Template slug must not be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("Template content must not be empty")
	}
	existing, err := ps.templateRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, fmt.Errorf("Failed to check existing template: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("Template slug %q already exists", slug)
	}
	tpl := &types.PromptTemplate{
		Slug:      slug,
		Content:   content,
		Variables: variablesJSON(content),
		Version:   1,
		IsActive:  true,
	}
	created, err := ps.templateRepo.Create(ctx, nil, []*types.PromptTemplate{tpl})
	if err != nil {
		return nil, fmt.Errorf("Failed to create template: %w", err)
	}
	return created[0], nil
}

// UpdateTemplate replaces the content, re-derives the variable list, and
// bumps the version.
func (ps *promptService) UpdateTemplate(ctx context.Context, id uuid.UUID, content string, isActive *bool) (*types.PromptTemplate, error) {
	found, err := ps.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("Failed to load template: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("Template %s %w", id, ErrNotFound)
	}
	tpl := found[0]

	fields := map[string]interface{}{}
	if strings.TrimSpace(content) != "" && content != tpl.Content {
		fields["content"] = content
		fields["variables"] = variablesJSON(content)
		fields["version"] = tpl.Version + 1
	}
	if isActive != nil {
		fields["is_active"] = *isActive
	}
	if len(fields) == 0 {
		return tpl, nil
	}
	if err := ps.templateRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return nil, fmt.Errorf("Failed to update template: %w", err)
	}
	updated, err := ps.templateRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil || len(updated) == 0 {
		return nil, fmt.Errorf("Failed to reload template: %w", err)
	}
	return updated[0], nil
}

func (ps *promptService) ListTemplates(ctx context.Context) ([]*types.PromptTemplate, error) {
	return ps.templateRepo.List(ctx, nil)
}

func (ps *promptService) DeleteTemplates(ctx context.Context, ids []uuid.UUID) error {
	return ps.templateRepo.FullDeleteByIDs(ctx, nil, ids)
}

type seedFile struct {
	Templates []struct {
		Slug    string `yaml:"slug"`
		Content string `yaml:"content"`
	} `yaml:"templates"`
}

// SeedDefaults inserts the built-in templates for any slug not yet present.
// Existing rows are never overwritten, so admin edits survive restarts.
func (ps *promptService) SeedDefaults(ctx context.Context) error {
	var seeds seedFile
	if err := yaml.Unmarshal(defaultTemplatesYAML, &seeds); err != nil {
		return fmt.Errorf("Failed to parse embedded templates: %w", err)
	}
	for _, seed := range seeds.Templates {
		existing, err := ps.templateRepo.GetBySlug(ctx, nil, seed.Slug)
		if err != nil {
			return fmt.Errorf("Failed to check template %q: %w", seed.Slug, err)
		}
		if existing != nil {
			continue
		}
		tpl := &types.PromptTemplate{
			Slug:      seed.Slug,
			Content:   seed.Content,
			Variables: variablesJSON(seed.Content),
			Version:   1,
			IsActive:  true,
		}
		if _, err := ps.templateRepo.Create(ctx, nil, []*types.PromptTemplate{tpl}); err != nil {
			return fmt.Errorf("Failed to seed template %q: %w", seed.Slug, err)
		}
		ps.log.Info("Seeded prompt template", "slug", seed.Slug)
	}
	return nil
}

func substitute(content string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(match string) string {
		key := match[1 : len(match)-1]
		if val, ok := vars[key]; ok {
			return val
		}
		return match
	})
}

// variablesJSON extracts the sorted, de-duplicated placeholder names from
// template content.
func variablesJSON(content string) datatypes.JSON {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	raw, _ := json.Marshal(names)
	return datatypes.JSON(raw)
}
