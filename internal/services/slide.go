package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/slidescript"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type SlideService interface {
	ParseAndUpsert(ctx context.Context, lessonID uuid.UUID, script string) ([]*types.Slide, slidescript.Source, error)
	GetByLesson(ctx context.Context, lessonID uuid.UUID) ([]*types.Slide, error)
	GetByID(ctx context.Context, slideID uuid.UUID) (*types.Slide, error)
	UpdateSlide(ctx context.Context, slideID uuid.UUID, fields map[string]interface{}) (*types.Slide, error)
}

type slideService struct {
	db        *gorm.DB
	log       *logger.Logger
	slideRepo repos.SlideRepo
}

func NewSlideService(db *gorm.DB, log *logger.Logger, slideRepo repos.SlideRepo) SlideService {
	return &slideService{
		db:        db,
		log:       log.With("service", "SlideService"),
		slideRepo: slideRepo,
	}
}

// enrichment holds per-slide artifacts that survive a re-parse. They are
// keyed by slide index, not id, because the upsert recreates every row.
type enrichment struct {
	optimizedContentJSON datatypes.JSON
	imageURL             string
	imagePrompt          string
	audioURL             string
	audioDuration        float64
}

// ParseAndUpsert normalizes a raw script and replaces the lesson's slides
// in a single transaction. Previously generated artifacts (optimized
// content, images, audio) carry over to the new slide at the same index.
// A script no branch can interpret leaves the existing slides untouched.
func (ss *slideService) ParseAndUpsert(ctx context.Context, lessonID uuid.UUID, script string) ([]*types.Slide, slidescript.Source, error) {
	parsed, source, err := slidescript.Parse(script)
	if err != nil {
		return nil, "", err
	}

	var created []*types.Slide
	txErr := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, exErr := ss.slideRepo.GetByLessonIDs(ctx, tx, []uuid.UUID{lessonID})
		if exErr != nil {
			return fmt.Errorf("Failed to load existing slides: %w", exErr)
		}
		preserved := make(map[int]enrichment, len(existing))
		for _, old := range existing {
			preserved[old.SlideIndex] = enrichment{
				optimizedContentJSON: old.OptimizedContentJSON,
				imageURL:             old.ImageURL,
				imagePrompt:          old.ImagePrompt,
				audioURL:             old.AudioURL,
				audioDuration:        old.AudioDuration,
			}
		}

		if dErr := ss.slideRepo.DeleteByLessonIDs(ctx, tx, []uuid.UUID{lessonID}); dErr != nil {
			return fmt.Errorf("Failed to clear existing slides: %w", dErr)
		}

		slides := make([]*types.Slide, 0, len(parsed))
		for _, p := range parsed {
			slide := &types.Slide{
				LessonID:    lessonID,
				SlideIndex:  p.SlideIndex,
				SlideType:   p.SlideType,
				Title:       p.Title,
				Content:     p.Content,
				VisualIdea:  p.VisualIdea,
				SpeakerNote: p.SpeakerNote,
				Status:      types.SlideStatusParsed,
			}
			if keep, ok := preserved[p.SlideIndex]; ok {
				slide.OptimizedContentJSON = keep.optimizedContentJSON
				slide.ImageURL = keep.imageURL
				slide.ImagePrompt = keep.imagePrompt
				slide.AudioURL = keep.audioURL
				slide.AudioDuration = keep.audioDuration
				if len(keep.optimizedContentJSON) > 0 {
					slide.Status = types.SlideStatusOptimized
				}
			}
			slides = append(slides, slide)
		}

		var cErr error
		created, cErr = ss.slideRepo.Create(ctx, tx, slides)
		if cErr != nil {
			return fmt.Errorf("Failed to create slides: %w", cErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, "", txErr
	}

	ss.log.Info("Slides upserted", "lessonID", lessonID, "count", len(created), "source", source)
	return created, source, nil
}

func (ss *slideService) GetByLesson(ctx context.Context, lessonID uuid.UUID) ([]*types.Slide, error) {
	return ss.slideRepo.GetByLessonIDs(ctx, nil, []uuid.UUID{lessonID})
}

func (ss *slideService) GetByID(ctx context.Context, slideID uuid.UUID) (*types.Slide, error) {
	found, err := ss.slideRepo.GetByIDs(ctx, nil, []uuid.UUID{slideID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("Slide %s %w", slideID, ErrNotFound)
	}
	return found[0], nil
}

func (ss *slideService) UpdateSlide(ctx context.Context, slideID uuid.UUID, fields map[string]interface{}) (*types.Slide, error) {
	if len(fields) == 0 {
		return ss.GetByID(ctx, slideID)
	}
	if err := ss.slideRepo.UpdateFields(ctx, nil, slideID, fields); err != nil {
		return nil, fmt.Errorf("Failed to update slide: %w", err)
	}
	return ss.GetByID(ctx, slideID)
}
