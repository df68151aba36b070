package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"option-set-api/internal/domain"
	"option-set-api/internal/dto"
	"option-set-api/internal/middleware"
	"option-set-api/internal/response"
	"option-set-api/internal/service"
)

type ArchiveHandler struct {
	optionSetService service.OptionSetService
}

func NewArchiveHandler(optionSetService service.OptionSetService) *ArchiveHandler {
	return &ArchiveHandler{
		optionSetService: optionSetService,
	}
}

// ArchiveSet godoc
// @Summary      Archive an option set
// @Description  Moves a live set into the archive as an immutable snapshot with actor and reason
// @Tags         archives
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        request body dto.ArchiveSetRequest true "Archive request with reason"
// @Success      200 {object} response.SuccessResponse{data=dto.ArchivedSetResponse} "Option set archived"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Management permission required"
// @Failure      404 {object} response.ErrorResponse "Option set not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId} [delete]
func (h *ArchiveHandler) ArchiveSet(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	var req dto.ArchiveSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "A deletion reason is required")
		return
	}

	archived, err := h.optionSetService.ArchiveSet(c.Request.Context(), setID, req.Reason, actorFromContext(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, archived)
}

// ListArchives godoc
// @Summary      List archived sets
// @Description  Returns one page of archived sets, newest deletion first by default
// @Tags         archives
// @Produce      json
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        skip query int false "Rows to skip"
// @Param        sortBy query string false "Sort key" Enums(deleted_at, name)
// @Success      200 {object} response.SuccessResponse{data=dto.ArchivePageResponse} "Archives retrieved"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /archives [get]
func (h *ArchiveHandler) ListArchives(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	sortBy := c.DefaultQuery("sortBy", "deleted_at")

	page, err := h.optionSetService.ListArchives(c.Request.Context(), limit, skip, sortBy)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, page)
}

// GetArchive godoc
// @Summary      Get one archived set
// @Description  Returns a single archive snapshot by archive ID
// @Tags         archives
// @Produce      json
// @Param        archiveId path string true "Archive ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ArchivedSetResponse} "Archive retrieved"
// @Failure      400 {object} response.ErrorResponse "Invalid archive ID"
// @Failure      404 {object} response.ErrorResponse "Archive not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /archives/{archiveId} [get]
func (h *ArchiveHandler) GetArchive(c *gin.Context) {
	archiveID, ok := parseUUIDParam(c, "archiveId")
	if !ok {
		return
	}

	archived, err := h.optionSetService.GetArchive(c.Request.Context(), archiveID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, archived)
}

// ListArchivedOptions godoc
// @Summary      List a set's removed options
// @Description  Returns the audit trail of options removed from a set one at a time, newest removal first
// @Tags         archives
// @Produce      json
// @Param        setId path string true "Original set ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ArchivedOptionResponse} "Removal records retrieved"
// @Failure      400 {object} response.ErrorResponse "Invalid set ID"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId}/archived-options [get]
func (h *ArchiveHandler) ListArchivedOptions(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	records, err := h.optionSetService.ListArchivedOptions(c.Request.Context(), setID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, records)
}

// RestoreArchivedSet godoc
// @Summary      Restore an archived set
// @Description  Reconstructs a live set from an archive snapshot; the set comes back without a field binding
// @Tags         archives
// @Accept       json
// @Produce      json
// @Param        archiveId path string true "Archive ID (UUID)"
// @Param        request body dto.RestoreArchivedSetRequest false "Optional rename on restore"
// @Success      200 {object} response.SuccessResponse{data=dto.OptionSetResponse} "Option set restored"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Management permission required"
// @Failure      404 {object} response.ErrorResponse "Archive not found"
// @Failure      409 {object} response.ErrorResponse "A live set with this name exists"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /archives/{archiveId}/restore [post]
func (h *ArchiveHandler) RestoreArchivedSet(c *gin.Context) {
	archiveID, ok := parseUUIDParam(c, "archiveId")
	if !ok {
		return
	}

	var req dto.RestoreArchivedSetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
	}

	set, err := h.optionSetService.RestoreArchivedSet(c.Request.Context(), archiveID, req.NewName)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, set)
}

// PermanentlyDelete godoc
// @Summary      Permanently delete an archive
// @Description  Removes an archive record with no recovery; the snapshot is exported to cold storage first when configured
// @Tags         archives
// @Produce      json
// @Param        archiveId path string true "Archive ID (UUID)"
// @Success      200 {object} response.SuccessResponse "Archive deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid archive ID"
// @Failure      403 {object} response.ErrorResponse "Management permission required"
// @Failure      404 {object} response.ErrorResponse "Archive not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /archives/{archiveId} [delete]
func (h *ArchiveHandler) PermanentlyDelete(c *gin.Context) {
	archiveID, ok := parseUUIDParam(c, "archiveId")
	if !ok {
		return
	}

	if err := h.optionSetService.PermanentlyDelete(c.Request.Context(), archiveID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Archive deleted permanently"})
}

// actorFromContext builds the audit actor from the authenticated principal
func actorFromContext(c *gin.Context) domain.Actor {
	actor := domain.Actor{}
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			actor.ID = id
		}
	}
	if v, ok := c.Get(middleware.ContextUserName); ok {
		if name, ok := v.(string); ok {
			actor.Name = name
		}
	}
	if v, ok := c.Get(middleware.ContextUserEmail); ok {
		if email, ok := v.(string); ok {
			actor.Email = email
		}
	}
	return actor
}
