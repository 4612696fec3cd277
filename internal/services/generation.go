package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/slidescript"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/sse"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

// GenerationService drives the LLM stages of the authoring pipeline:
// outline, slide script, per-slide optimization, and the question bank.
type GenerationService interface {
	GenerateOutline(ctx context.Context, userID, lessonID uuid.UUID) (*types.Lesson, error)
	GenerateSlideScript(ctx context.Context, userID, lessonID uuid.UUID) ([]*types.Slide, error)
	ReparseSlideScript(ctx context.Context, userID, lessonID uuid.UUID, script string) ([]*types.Slide, error)
	OptimizeSlide(ctx context.Context, userID, slideID uuid.UUID) (*types.Slide, error)
	GenerateQuestions(ctx context.Context, userID, lessonID uuid.UUID, count int) ([]*types.Question, error)
}

type generationService struct {
	log             *logger.Logger
	aiClient        AIClient
	apiKeyService   ApiKeyService
	promptService   PromptService
	subjectService  SubjectService
	lessonService   LessonService
	slideService    SlideService
	questionService QuestionService
	hub             *sse.SSEHub
}

func NewGenerationService(
	log *logger.Logger,
	aiClient AIClient,
	apiKeyService ApiKeyService,
	promptService PromptService,
	subjectService SubjectService,
	lessonService LessonService,
	slideService SlideService,
	questionService QuestionService,
	hub *sse.SSEHub,
) GenerationService {
	return &generationService{
		log:             log.With("service", "GenerationService"),
		aiClient:        aiClient,
		apiKeyService:   apiKeyService,
		promptService:   promptService,
		subjectService:  subjectService,
		lessonService:   lessonService,
		slideService:    slideService,
		questionService: questionService,
		hub:             hub,
	}
}

// lessonVars merges subject profile variables with the lesson's own.
func (gs *generationService) lessonVars(ctx context.Context, userID uuid.UUID, lesson *types.Lesson) (map[string]string, error) {
	subject, err := gs.subjectService.GetSubject(ctx, userID, lesson.SubjectID)
	if err != nil {
		return nil, err
	}
	vars := PromptVars(subject)
	vars["lesson_title"] = lesson.Title
	return vars, nil
}

func (gs *generationService) chat(ctx context.Context, userID uuid.UUID, slug string, vars map[string]string) (string, error) {
	prompt, err := gs.promptService.BuildFullPrompt(ctx, slug, vars)
	if err != nil {
		return "", err
	}
	apiKey, err := gs.apiKeyService.ResolveKey(ctx, userID, types.ApiKeyServiceLLM)
	if err != nil {
		return "", err
	}
	return gs.aiClient.Chat(ctx, apiKey, "", prompt)
}

func (gs *generationService) GenerateOutline(ctx context.Context, userID, lessonID uuid.UUID) (*types.Lesson, error) {
	lesson, err := gs.lessonService.GetLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	vars, err := gs.lessonVars(ctx, userID, lesson)
	if err != nil {
		return nil, err
	}

	reply, err := gs.chat(ctx, userID, SlugLessonOutline, vars)
	if err != nil {
		return nil, fmt.Errorf("Outline generation failed: %w", err)
	}

	fields := map[string]interface{}{
		"raw_outline": reply,
		"status":      types.LessonStatusOutlineReady,
	}
	// Keep the structured form alongside the raw reply when the model
	// returned valid JSON.
	candidate := slidescript.ExtractFenced(reply)
	var probe any
	if json.Unmarshal([]byte(candidate), &probe) == nil {
		fields["outline_json"] = datatypes.JSON(candidate)
	}

	updated, err := gs.lessonService.UpdateLesson(ctx, userID, lessonID, fields)
	if err != nil {
		return nil, err
	}
	gs.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(lessonID),
		Event:   sse.SSEEventLessonOutlineReady,
		Data:    map[string]any{"lesson_id": lessonID},
	})
	return updated, nil
}

func (gs *generationService) GenerateSlideScript(ctx context.Context, userID, lessonID uuid.UUID) ([]*types.Slide, error) {
	lesson, err := gs.lessonService.GetLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	outline := string(lesson.OutlineJSON)
	if outline == "" {
		outline = lesson.RawOutline
	}
	if outline == "" {
		return nil, fmt.Errorf("Lesson has no outline yet")
	}
	vars, err := gs.lessonVars(ctx, userID, lesson)
	if err != nil {
		return nil, err
	}
	vars["outline"] = outline

	reply, err := gs.chat(ctx, userID, SlugSlideScript, vars)
	if err != nil {
		return nil, fmt.Errorf("Slide script generation failed: %w", err)
	}
	return gs.ReparseSlideScript(ctx, userID, lessonID, reply)
}

// ReparseSlideScript persists a script (model-generated or hand-edited)
// and rebuilds the slide rows from it.
func (gs *generationService) ReparseSlideScript(ctx context.Context, userID, lessonID uuid.UUID, script string) ([]*types.Slide, error) {
	if _, err := gs.lessonService.GetLesson(ctx, userID, lessonID); err != nil {
		return nil, err
	}
	slides, source, err := gs.slideService.ParseAndUpsert(ctx, lessonID, script)
	if err != nil {
		return nil, err
	}
	if _, uErr := gs.lessonService.UpdateLesson(ctx, userID, lessonID, map[string]interface{}{
		"slide_script": script,
		"status":       types.LessonStatusScriptReady,
	}); uErr != nil {
		return nil, uErr
	}
	gs.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(lessonID),
		Event:   sse.SSEEventSlidesParsed,
		Data:    map[string]any{"lesson_id": lessonID, "count": len(slides), "source": source},
	})
	return slides, nil
}

type optimizedSlide struct {
	Title       string   `json:"title"`
	Content     []string `json:"content"`
	SpeakerNote string   `json:"speakerNote"`
}

func (gs *generationService) OptimizeSlide(ctx context.Context, userID, slideID uuid.UUID) (*types.Slide, error) {
	slide, err := gs.slideService.GetByID(ctx, slideID)
	if err != nil {
		return nil, err
	}
	lesson, err := gs.lessonService.GetLesson(ctx, userID, slide.LessonID)
	if err != nil {
		return nil, err
	}
	vars, err := gs.lessonVars(ctx, userID, lesson)
	if err != nil {
		return nil, err
	}
	vars["title"] = slide.Title
	vars["content"] = slide.Content
	vars["speaker_note"] = slide.SpeakerNote

	reply, err := gs.chat(ctx, userID, SlugSlideOptimize, vars)
	if err != nil {
		return nil, fmt.Errorf("Slide optimization failed: %w", err)
	}
	candidate := slidescript.ExtractFenced(reply)
	var parsed optimizedSlide
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, fmt.Errorf("Optimization reply is not valid JSON: %w", err)
	}

	updated, err := gs.slideService.UpdateSlide(ctx, slideID, map[string]interface{}{
		"optimized_content_json": datatypes.JSON(candidate),
		"status":                 types.SlideStatusOptimized,
	})
	if err != nil {
		return nil, err
	}
	gs.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(slide.LessonID),
		Event:   sse.SSEEventSlideOptimized,
		Data:    map[string]any{"slide_id": slideID, "slide_index": slide.SlideIndex},
	})
	return updated, nil
}

type generatedQuestions struct {
	Questions []struct {
		Type        string   `json:"type"`
		Content     string   `json:"content"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
		Difficulty  string   `json:"difficulty"`
	} `json:"questions"`
}

func (gs *generationService) GenerateQuestions(ctx context.Context, userID, lessonID uuid.UUID, count int) ([]*types.Question, error) {
	lesson, err := gs.lessonService.GetLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.SlideScript == "" {
		return nil, fmt.Errorf("Lesson has no slide script yet")
	}
	if count <= 0 {
		count = 10
	}
	vars, err := gs.lessonVars(ctx, userID, lesson)
	if err != nil {
		return nil, err
	}
	vars["script"] = lesson.SlideScript
	vars["count"] = strconv.Itoa(count)

	reply, err := gs.chat(ctx, userID, SlugLessonQuestions, vars)
	if err != nil {
		return nil, fmt.Errorf("Question generation failed: %w", err)
	}
	candidate := slidescript.ExtractFenced(reply)
	var parsed generatedQuestions
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, fmt.Errorf("Question reply is not valid JSON: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("Model returned no questions")
	}

	questions := make([]*types.Question, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		optionsRaw, _ := json.Marshal(q.Options)
		qType := q.Type
		if qType == "" {
			qType = types.QuestionTypeMultipleChoice
		}
		questions = append(questions, &types.Question{
			Type:        qType,
			Content:     q.Content,
			Options:     datatypes.JSON(optionsRaw),
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Difficulty:  q.Difficulty,
		})
	}
	return gs.questionService.ReplaceForLesson(ctx, lessonID, questions)
}
