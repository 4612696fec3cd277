package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/imageconv"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/pptx"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/slidescript"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/sse"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

// ExportService renders a lesson into downloadable artifacts: a narrated
// PPTX deck and the question bank as JSON or CSV.
type ExportService interface {
	ExportPPTX(ctx context.Context, userID, lessonID uuid.UUID) (string, error)
	ExportQuestionsJSON(ctx context.Context, userID, lessonID uuid.UUID) ([]byte, error)
	ExportQuestionsCSV(ctx context.Context, userID, lessonID uuid.UUID) ([]byte, error)
}

type exportService struct {
	log             *logger.Logger
	lessonService   LessonService
	subjectService  SubjectService
	slideService    SlideService
	questionService QuestionService
	storageService  StorageService
	hub             *sse.SSEHub
}

func NewExportService(
	log *logger.Logger,
	lessonService LessonService,
	subjectService SubjectService,
	slideService SlideService,
	questionService QuestionService,
	storageService StorageService,
	hub *sse.SSEHub,
) ExportService {
	return &exportService{
		log:             log.With("service", "ExportService"),
		lessonService:   lessonService,
		subjectService:  subjectService,
		slideService:    slideService,
		questionService: questionService,
		storageService:  storageService,
		hub:             hub,
	}
}

// storageKeyFromURL maps a public /files/ URL back to its storage key.
func storageKeyFromURL(url string) string {
	return strings.TrimPrefix(url, "/files/")
}

// contentLines prefers optimized content when present, falling back to
// the parsed content split on newlines.
func contentLines(slide *types.Slide) (title string, lines []string) {
	title = slide.Title
	if len(slide.OptimizedContentJSON) > 0 {
		var opt struct {
			Title   string   `json:"title"`
			Content []string `json:"content"`
		}
		if json.Unmarshal(slide.OptimizedContentJSON, &opt) == nil {
			if strings.TrimSpace(opt.Title) != "" {
				title = opt.Title
			}
			if len(opt.Content) > 0 {
				return title, opt.Content
			}
		}
	}
	for _, line := range strings.Split(slide.Content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return title, lines
}

func (es *exportService) ExportPPTX(ctx context.Context, userID, lessonID uuid.UUID) (string, error) {
	lesson, err := es.lessonService.GetLesson(ctx, userID, lessonID)
	if err != nil {
		return "", err
	}
	subject, err := es.subjectService.GetSubject(ctx, userID, lesson.SubjectID)
	if err != nil {
		return "", err
	}
	slides, err := es.slideService.GetByLesson(ctx, lessonID)
	if err != nil {
		return "", err
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("Lesson has no slides to export")
	}

	deck := &pptx.Deck{Title: lesson.Title, Author: subject.CourseName}
	for _, slide := range slides {
		deck.AddSlide(es.buildSlide(ctx, slide, subject))
	}

	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		return "", fmt.Errorf("Failed to render deck: %w", err)
	}

	key := fmt.Sprintf("%s/%s/exports/%s.pptx", userID, lessonID, sanitizeFilename(lesson.Title))
	url, err := es.storageService.Save(ctx, key, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("Failed to store deck: %w", err)
	}

	es.hub.Broadcast(sse.SSEMessage{
		Channel: sse.LessonChannel(lessonID),
		Event:   sse.SSEEventExportReady,
		Data:    map[string]any{"lesson_id": lessonID, "url": url},
	})
	es.log.Info("Deck exported", "lessonID", lessonID, "slides", len(slides), "bytes", buf.Len())
	return url, nil
}

func (es *exportService) buildSlide(ctx context.Context, slide *types.Slide, subject *types.Subject) pptx.Slide {
	title, lines := contentLines(slide)
	out := pptx.Slide{
		Title:   title,
		Bullets: lines,
		Notes:   narrationText(slide),
	}
	switch slide.SlideType {
	case slidescript.TypeTitle:
		out.Kind = pptx.KindTitle
		out.Subtitle = subject.CourseName
	case slidescript.TypeAgenda:
		out.Kind = pptx.KindAgenda
	default:
		out.Kind = pptx.KindContent
	}

	if slide.ImageURL != "" {
		if data, err := es.storageService.Read(ctx, storageKeyFromURL(slide.ImageURL)); err != nil {
			es.log.Warn("Skipping slide image in export", "slideIndex", slide.SlideIndex, "error", err)
		} else {
			// PowerPoint cannot render webp, so images are normalized
			// to PNG on the way in.
			if png, convErr := imageconv.ToPNG(data); convErr == nil {
				out.Image = &pptx.Image{Data: png, Ext: "png"}
			} else {
				es.log.Warn("Skipping unconvertible slide image", "slideIndex", slide.SlideIndex, "error", convErr)
			}
		}
	}

	if slide.AudioURL != "" {
		if data, err := es.storageService.Read(ctx, storageKeyFromURL(slide.AudioURL)); err != nil {
			es.log.Warn("Skipping slide audio in export", "slideIndex", slide.SlideIndex, "error", err)
		} else {
			ext := "mp3"
			if i := strings.LastIndex(slide.AudioURL, "."); i >= 0 {
				ext = slide.AudioURL[i+1:]
			}
			out.Audio = &pptx.Audio{Data: data, Ext: ext}
		}
	}
	return out
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "lesson"
	}
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "lesson"
	}
	return sb.String()
}

type exportedQuestion struct {
	Type        string   `json:"type"`
	Content     string   `json:"content"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
}

func (es *exportService) loadQuestions(ctx context.Context, userID, lessonID uuid.UUID) ([]exportedQuestion, error) {
	questions, err := es.questionService.ListByLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("Lesson has no questions to export")
	}
	out := make([]exportedQuestion, 0, len(questions))
	for _, q := range questions {
		var options []string
		if len(q.Options) > 0 {
			_ = json.Unmarshal(q.Options, &options)
		}
		out = append(out, exportedQuestion{
			Type:        q.Type,
			Content:     q.Content,
			Options:     options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Difficulty:  q.Difficulty,
		})
	}
	return out, nil
}

func (es *exportService) ExportQuestionsJSON(ctx context.Context, userID, lessonID uuid.UUID) ([]byte, error) {
	questions, err := es.loadQuestions(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(map[string]any{"questions": questions}, "", "  ")
}

func (es *exportService) ExportQuestionsCSV(ctx context.Context, userID, lessonID uuid.UUID) ([]byte, error) {
	questions, err := es.loadQuestions(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"type", "content", "options", "answer", "explanation", "difficulty"}); err != nil {
		return nil, err
	}
	for _, q := range questions {
		record := []string{
			q.Type,
			q.Content,
			strings.Join(q.Options, " | "),
			q.Answer,
			q.Explanation,
			q.Difficulty,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
