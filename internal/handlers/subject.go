package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/services"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type SubjectHandler struct {
	subjectService services.SubjectService
}

func NewSubjectHandler(subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

type subjectRequest struct {
	Name            string `json:"name"`
	InstitutionType string `json:"institution_type"`
	ExpertiseArea   string `json:"expertise_area"`
	CourseName      string `json:"course_name"`
	TargetAudience  string `json:"target_audience"`
	Major           string `json:"major"`
	Context         string `json:"context"`
}

func (sh *SubjectHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	subject := &types.Subject{
		UserID:          userID,
		Name:            req.Name,
		InstitutionType: req.InstitutionType,
		ExpertiseArea:   req.ExpertiseArea,
		CourseName:      req.CourseName,
		TargetAudience:  req.TargetAudience,
		Major:           req.Major,
		Context:         req.Context,
	}
	created, err := sh.subjectService.CreateSubject(c.Request.Context(), subject)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, created)
}

func (sh *SubjectHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	subjects, err := sh.subjectService.ListSubjects(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, subjects)
}

func (sh *SubjectHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	subject, err := sh.subjectService.GetSubject(c.Request.Context(), userID, subjectID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondOK(c, subject)
}

func (sh *SubjectHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	allowed := map[string]bool{
		"name": true, "institution_type": true, "expertise_area": true,
		"course_name": true, "target_audience": true, "major": true, "context": true,
	}
	for key := range fields {
		if !allowed[key] {
			delete(fields, key)
		}
	}
	subject, err := sh.subjectService.UpdateSubject(c.Request.Context(), userID, subjectID, fields)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	RespondOK(c, subject)
}

func (sh *SubjectHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := sh.subjectService.DeleteSubject(c.Request.Context(), userID, subjectID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
