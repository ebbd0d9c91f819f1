package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/app/services"
	"github.com/nahid/certchain/internal/middleware"
)

// InstituteController handles institute registration, lookup and
// degree/department list maintenance.
type InstituteController struct {
	instituteService services.InstituteService
}

// NewInstituteController creates a new InstituteController
func NewInstituteController(instituteService services.InstituteService) *InstituteController {
	return &InstituteController{
		instituteService: instituteService,
	}
}

// caller extracts the authenticated institute or aborts with 401.
func (c *InstituteController) caller(ctx *gin.Context) (string, bool) {
	address, ok := middleware.InstituteAddress(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return address, true
}

// listIndex parses the :index path parameter.
func listIndex(ctx *gin.Context) (uint64, bool) {
	index, err := strconv.ParseUint(ctx.Param("index"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid list index")
		errorDetail = errorDetail.WithDetails("Index must be a non-negative number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return index, true
}

// RegisterInstitute handles institute registration
// @Summary Register an institute
// @Description Adds a new institute record with its degree and department lists to the registry
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterInstituteRequest true "Institute information"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Institute registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Institute already registered"
// @Failure 502 {object} dto.ErrorResponse "Registry transaction failed"
// @Router /institutes [post]
func (c *InstituteController) RegisterInstitute(ctx *gin.Context) {
	var req dto.RegisterInstituteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	if err := c.instituteService.Register(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Institute registered successfully"},
		Timestamp: time.Now(),
	})
}

// GetInstitute handles public institute lookup
// @Summary Get institute by address
// @Description Retrieves an institute record including its current degree and department lists
// @Tags institutes
// @Produce json
// @Param address path string true "Institute wallet address"
// @Success 200 {object} dto.APIResponse{data=chain.Institute} "Institute retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid wallet address"
// @Failure 404 {object} dto.ErrorResponse "Institute not found"
// @Router /institutes/{address} [get]
func (c *InstituteController) GetInstitute(ctx *gin.Context) {
	institute, err := c.instituteService.Get(ctx, ctx.Param("address"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      institute,
		Timestamp: time.Now(),
	})
}

// AddDegrees appends degree names to the caller's list
// @Summary Add degrees
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ListNamesRequest true "Degree names"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Degrees added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the signing institute"
// @Router /institutes/me/degrees [post]
func (c *InstituteController) AddDegrees(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}

	var req dto.ListNamesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	if err := c.instituteService.AddDegrees(ctx, caller, req.Names); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Degrees added successfully"},
		Timestamp: time.Now(),
	})
}

// UpdateDegree renames a degree list entry in place
// @Summary Rename a degree
// @Description Renames the degree at the given index. Certificates referencing the index display the new name.
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "List index"
// @Param request body dto.RenameEntryRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Degree renamed"
// @Failure 400 {object} dto.ErrorResponse "Invalid index or name"
// @Router /institutes/me/degrees/{index} [put]
func (c *InstituteController) UpdateDegree(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}
	index, ok := listIndex(ctx)
	if !ok {
		return
	}

	var req dto.RenameEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	if err := c.instituteService.UpdateDegree(ctx, caller, index, req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Degree updated successfully"},
		Timestamp: time.Now(),
	})
}

// RemoveDegree removes a degree list entry
// @Summary Remove a degree
// @Description Removes the degree at the given index. Later entries shift down, so certificates referencing them display shifted names.
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param index path int true "List index"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Degree removed"
// @Failure 400 {object} dto.ErrorResponse "Index out of range"
// @Router /institutes/me/degrees/{index} [delete]
func (c *InstituteController) RemoveDegree(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}
	index, ok := listIndex(ctx)
	if !ok {
		return
	}

	if err := c.instituteService.RemoveDegree(ctx, caller, index); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Degree removed successfully"},
		Timestamp: time.Now(),
	})
}

// ClearDegrees empties the caller's degree list
// @Summary Clear degrees
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Degrees cleared"
// @Router /institutes/me/degrees [delete]
func (c *InstituteController) ClearDegrees(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}

	if err := c.instituteService.ClearDegrees(ctx, caller); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Degrees cleared successfully"},
		Timestamp: time.Now(),
	})
}

// AddDepartments appends department names to the caller's list
// @Summary Add departments
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ListNamesRequest true "Department names"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Departments added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /institutes/me/departments [post]
func (c *InstituteController) AddDepartments(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}

	var req dto.ListNamesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	if err := c.instituteService.AddDepartments(ctx, caller, req.Names); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Departments added successfully"},
		Timestamp: time.Now(),
	})
}

// UpdateDepartment renames a department list entry in place
// @Summary Rename a department
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "List index"
// @Param request body dto.RenameEntryRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Department renamed"
// @Failure 400 {object} dto.ErrorResponse "Invalid index or name"
// @Router /institutes/me/departments/{index} [put]
func (c *InstituteController) UpdateDepartment(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}
	index, ok := listIndex(ctx)
	if !ok {
		return
	}

	var req dto.RenameEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	if err := c.instituteService.UpdateDepartment(ctx, caller, index, req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Department updated successfully"},
		Timestamp: time.Now(),
	})
}

// RemoveDepartment removes a department list entry
// @Summary Remove a department
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param index path int true "List index"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Department removed"
// @Failure 400 {object} dto.ErrorResponse "Index out of range"
// @Router /institutes/me/departments/{index} [delete]
func (c *InstituteController) RemoveDepartment(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}
	index, ok := listIndex(ctx)
	if !ok {
		return
	}

	if err := c.instituteService.RemoveDepartment(ctx, caller, index); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Department removed successfully"},
		Timestamp: time.Now(),
	})
}

// ClearDepartments empties the caller's department list
// @Summary Clear departments
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Departments cleared"
// @Router /institutes/me/departments [delete]
func (c *InstituteController) ClearDepartments(ctx *gin.Context) {
	caller, ok := c.caller(ctx)
	if !ok {
		return
	}

	if err := c.instituteService.ClearDepartments(ctx, caller); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Departments cleared successfully"},
		Timestamp: time.Now(),
	})
}
