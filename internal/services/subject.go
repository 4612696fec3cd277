package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

// SubjectService manages the teaching profiles lessons hang off. All
// operations are scoped to the owning user.
type SubjectService interface {
	CreateSubject(ctx context.Context, subject *types.Subject) (*types.Subject, error)
	GetSubject(ctx context.Context, userID, subjectID uuid.UUID) (*types.Subject, error)
	ListSubjects(ctx context.Context, userID uuid.UUID) ([]*types.Subject, error)
	UpdateSubject(ctx context.Context, userID, subjectID uuid.UUID, fields map[string]interface{}) (*types.Subject, error)
	DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error
}

type subjectService struct {
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
}

func NewSubjectService(log *logger.Logger, subjectRepo repos.SubjectRepo) SubjectService {
	return &subjectService{
		log:         log.With("service", "SubjectService"),
		subjectRepo: subjectRepo,
	}
}

func (sjs *subjectService) CreateSubject(ctx context.Context, subject *types.Subject) (*types.Subject, error) {
	subject.Name = strings.TrimSpace(subject.Name)
	if subject.Name == "" {
		return nil, fmt.Errorf("Subject name must not be empty")
	}
	if subject.UserID == uuid.Nil {
		return nil, fmt.Errorf("Subject requires an owner")
	}
	created, err := sjs.subjectRepo.Create(ctx, nil, []*types.Subject{subject})
	if err != nil {
		return nil, fmt.Errorf("Failed to create subject: %w", err)
	}
	return created[0], nil
}

func (sjs *subjectService) GetSubject(ctx context.Context, userID, subjectID uuid.UUID) (*types.Subject, error) {
	found, err := sjs.subjectRepo.GetByIDs(ctx, nil, []uuid.UUID{subjectID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load subject: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return nil, fmt.Errorf("Subject %s %w", subjectID, ErrNotFound)
	}
	return found[0], nil
}

func (sjs *subjectService) ListSubjects(ctx context.Context, userID uuid.UUID) ([]*types.Subject, error) {
	return sjs.subjectRepo.ListByUserIDs(ctx, nil, []uuid.UUID{userID})
}

func (sjs *subjectService) UpdateSubject(ctx context.Context, userID, subjectID uuid.UUID, fields map[string]interface{}) (*types.Subject, error) {
	if _, err := sjs.GetSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := sjs.subjectRepo.UpdateFields(ctx, nil, subjectID, fields); err != nil {
			return nil, fmt.Errorf("Failed to update subject: %w", err)
		}
	}
	return sjs.GetSubject(ctx, userID, subjectID)
}

func (sjs *subjectService) DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	if _, err := sjs.GetSubject(ctx, userID, subjectID); err != nil {
		return err
	}
	return sjs.subjectRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{subjectID})
}

// PromptVars flattens a subject into template variables for the prompt
// composer. Fields the instructor left blank get a generic phrasing so
// the role prompt never reads with holes in it.
func PromptVars(subject *types.Subject) map[string]string {
	if subject == nil {
		return map[string]string{}
	}
	return map[string]string{
		"institution_type": orDefault(subject.InstitutionType, "a higher education institution"),
		"expertise_area":   orDefault(subject.ExpertiseArea, "the subject being taught"),
		"course_name":      orDefault(subject.CourseName, subject.Name),
		"target_audience":  orDefault(subject.TargetAudience, "undergraduate students"),
		"major":            orDefault(subject.Major, "a general program"),
		"context":          subject.Context,
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
