package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"option-set-api/internal/dto"
	"option-set-api/internal/response"
	"option-set-api/internal/service"
)

type OptionSetHandler struct {
	optionSetService service.OptionSetService
}

func NewOptionSetHandler(optionSetService service.OptionSetService) *OptionSetHandler {
	return &OptionSetHandler{
		optionSetService: optionSetService,
	}
}

// ListSets godoc
// @Summary      List option sets
// @Description  Returns all live option sets with their options in display order
// @Tags         option-sets
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.OptionSetResponse} "Option sets retrieved"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets [get]
func (h *OptionSetHandler) ListSets(c *gin.Context) {
	sets, err := h.optionSetService.ListSets(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, sets)
}

// GetSet godoc
// @Summary      Get one option set
// @Description  Returns a single live option set by ID
// @Tags         option-sets
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.OptionSetResponse} "Option set retrieved"
// @Failure      400 {object} response.ErrorResponse "Invalid set ID"
// @Failure      404 {object} response.ErrorResponse "Option set not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId} [get]
func (h *OptionSetHandler) GetSet(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	set, err := h.optionSetService.GetSet(c.Request.Context(), setID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, set)
}

// CreateSet godoc
// @Summary      Create an option set
// @Description  Creates a new live option set with no options
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOptionSetRequest true "Option set creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.OptionSetResponse} "Option set created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      409 {object} response.ErrorResponse "Duplicate set name"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets [post]
func (h *OptionSetHandler) CreateSet(c *gin.Context) {
	var req dto.CreateOptionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	set, err := h.optionSetService.CreateSet(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, set)
}

// UpdateSet godoc
// @Summary      Update an option set
// @Description  Updates the name, description or active flag of a live set
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        request body dto.UpdateOptionSetRequest true "Option set update request"
// @Success      200 {object} response.SuccessResponse{data=dto.OptionSetResponse} "Option set updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Option set not found"
// @Failure      409 {object} response.ErrorResponse "Duplicate set name"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId} [patch]
func (h *OptionSetHandler) UpdateSet(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	var req dto.UpdateOptionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	set, err := h.optionSetService.UpdateSet(c.Request.Context(), setID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, set)
}

// AddOption godoc
// @Summary      Add an option
// @Description  Appends a single option to a set with the next incremental ID
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        request body dto.AddOptionRequest true "Option creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.OptionResponse} "Option created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Option set not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId}/options [post]
func (h *OptionSetHandler) AddOption(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	var req dto.AddOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	option, err := h.optionSetService.AddOption(c.Request.Context(), setID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, option)
}

// BulkAddOptions godoc
// @Summary      Add multiple options
// @Description  Appends all candidates with a non-blank name in input order; blank rows are dropped
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        request body dto.BulkAddOptionsRequest true "Bulk option creation request"
// @Success      201 {object} response.SuccessResponse{data=[]dto.OptionResponse} "Options created"
// @Failure      400 {object} response.ErrorResponse "No valid options"
// @Failure      404 {object} response.ErrorResponse "Option set not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId}/options/bulk [post]
func (h *OptionSetHandler) BulkAddOptions(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	var req dto.BulkAddOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	options, err := h.optionSetService.BulkAddOptions(c.Request.Context(), setID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, options)
}

// UpdateOption godoc
// @Summary      Update an option
// @Description  Updates the name, visibility or active flag of an option; the incremental ID never changes
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        optionId path string true "Option ID (UUID)"
// @Param        request body dto.UpdateOptionRequest true "Option update request"
// @Success      200 {object} response.SuccessResponse{data=dto.OptionResponse} "Option updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Option not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId}/options/{optionId} [patch]
func (h *OptionSetHandler) UpdateOption(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}
	optionID, ok := parseUUIDParam(c, "optionId")
	if !ok {
		return
	}

	var req dto.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	option, err := h.optionSetService.UpdateOption(c.Request.Context(), setID, optionID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, option)
}

// ArchiveOption godoc
// @Summary      Archive an option
// @Description  Removes an option from a live set and records the removal with actor and reason
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        optionId path string true "Option ID (UUID)"
// @Param        request body dto.ArchiveOptionRequest true "Archive request with reason"
// @Success      200 {object} response.SuccessResponse "Option archived"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      403 {object} response.ErrorResponse "Management permission required"
// @Failure      404 {object} response.ErrorResponse "Option not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId}/options/{optionId} [delete]
func (h *OptionSetHandler) ArchiveOption(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}
	optionID, ok := parseUUIDParam(c, "optionId")
	if !ok {
		return
	}

	var req dto.ArchiveOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "A deletion reason is required")
		return
	}

	err := h.optionSetService.ArchiveOption(c.Request.Context(), setID, optionID, req.Reason, actorFromContext(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Option archived successfully"})
}

// BindField godoc
// @Summary      Bind a field to a set
// @Description  Claims the field for this set, releasing it from any previous owner; an empty fieldId releases the binding
// @Tags         option-sets
// @Accept       json
// @Produce      json
// @Param        setId path string true "Set ID (UUID)"
// @Param        request body dto.BindFieldRequest true "Field binding request"
// @Success      200 {object} response.SuccessResponse{data=dto.BindFieldResponse} "Field bound"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Option set not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /option-sets/{setId}/field [put]
func (h *OptionSetHandler) BindField(c *gin.Context) {
	setID, ok := parseUUIDParam(c, "setId")
	if !ok {
		return
	}

	var req dto.BindFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.optionSetService.BindField(c.Request.Context(), setID, req.FieldID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// parseUUIDParam parses a path parameter as UUID, sending a 400 on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
