package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Radmir675/Divisions-sub000/internal/interface/dto/request"
	"github.com/Radmir675/Divisions-sub000/internal/interface/dto/response"
	"github.com/Radmir675/Divisions-sub000/internal/interface/presenter"
	deptcmd "github.com/Radmir675/Divisions-sub000/internal/usecase/department/command"
	deptqry "github.com/Radmir675/Divisions-sub000/internal/usecase/department/query"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// DepartmentHandler は部門関連のHTTPハンドラーです
type DepartmentHandler struct {
	// Commands
	createCommand          *deptcmd.CreateDepartmentCommand
	renameCommand          *deptcmd.RenameDepartmentCommand
	moveCommand            *deptcmd.MoveDepartmentCommand
	updateLocationsCommand *deptcmd.UpdateDepartmentLocationsCommand
	softDeleteCommand      *deptcmd.SoftDeleteDepartmentCommand

	// Queries
	getQuery          *deptqry.GetDepartmentQuery
	listChildrenQuery *deptqry.ListChildDepartmentsQuery
}

// NewDepartmentHandler は新しいDepartmentHandlerを作成します
func NewDepartmentHandler(
	createCommand *deptcmd.CreateDepartmentCommand,
	renameCommand *deptcmd.RenameDepartmentCommand,
	moveCommand *deptcmd.MoveDepartmentCommand,
	updateLocationsCommand *deptcmd.UpdateDepartmentLocationsCommand,
	softDeleteCommand *deptcmd.SoftDeleteDepartmentCommand,
	getQuery *deptqry.GetDepartmentQuery,
	listChildrenQuery *deptqry.ListChildDepartmentsQuery,
) *DepartmentHandler {
	return &DepartmentHandler{
		createCommand:          createCommand,
		renameCommand:          renameCommand,
		moveCommand:            moveCommand,
		updateLocationsCommand: updateLocationsCommand,
		softDeleteCommand:      softDeleteCommand,
		getQuery:               getQuery,
		listChildrenQuery:      listChildrenQuery,
	}
}

// CreateDepartment は部門を作成します
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c echo.Context) error {
	var req request.CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	parentID, err := parseOptionalID(req.ParentID, "parentId")
	if err != nil {
		return err
	}
	locationIDs, err := parseIDs(req.LocationIDs, "locationIds")
	if err != nil {
		return err
	}

	output, err := h.createCommand.Execute(c.Request().Context(), deptcmd.CreateDepartmentInput{
		Name:        req.Name,
		Identifier:  req.Identifier,
		ParentID:    parentID,
		LocationIDs: locationIDs,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToDepartmentResponse(output.Department))
}

// GetDepartment は部門を取得します
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c echo.Context) error {
	departmentID, err := parsePathID(c)
	if err != nil {
		return err
	}

	output, err := h.getQuery.Execute(c.Request().Context(), deptqry.GetDepartmentInput{DepartmentID: departmentID})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.FromDepartmentView(output.Department))
}

// ListRootDepartments はルート部門の一覧を取得します
// GET /api/v1/departments/roots
func (h *DepartmentHandler) ListRootDepartments(c echo.Context) error {
	output, err := h.listChildrenQuery.Execute(c.Request().Context(), deptqry.ListChildDepartmentsInput{})
	if err != nil {
		return err
	}

	return presenter.List(c, response.FromDepartmentViews(output.Departments), len(output.Departments))
}

// ListChildDepartments は直下の部門の一覧を取得します
// GET /api/v1/departments/:id/children
func (h *DepartmentHandler) ListChildDepartments(c echo.Context) error {
	departmentID, err := parsePathID(c)
	if err != nil {
		return err
	}

	output, err := h.listChildrenQuery.Execute(c.Request().Context(), deptqry.ListChildDepartmentsInput{ParentID: &departmentID})
	if err != nil {
		return err
	}

	return presenter.List(c, response.FromDepartmentViews(output.Departments), len(output.Departments))
}

// RenameDepartment は部門名を変更します
// PATCH /api/v1/departments/:id
func (h *DepartmentHandler) RenameDepartment(c echo.Context) error {
	departmentID, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req request.RenameDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.renameCommand.Execute(c.Request().Context(), deptcmd.RenameDepartmentInput{
		DepartmentID: departmentID,
		Name:         req.Name,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToDepartmentResponse(output.Department))
}

// MoveDepartment は部門を別の親（またはルート）へ移動します
// PUT /api/v1/departments/:id/parent
func (h *DepartmentHandler) MoveDepartment(c echo.Context) error {
	departmentID, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req request.MoveDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	parentID, err := parseOptionalID(req.ParentID, "parentId")
	if err != nil {
		return err
	}

	output, err := h.moveCommand.Execute(c.Request().Context(), deptcmd.MoveDepartmentInput{
		DepartmentID: departmentID,
		NewParentID:  parentID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToDepartmentResponse(output.Department))
}

// UpdateDepartmentLocations は部門のロケーションを全て置き換えます
// PUT /api/v1/departments/:id/locations
func (h *DepartmentHandler) UpdateDepartmentLocations(c echo.Context) error {
	departmentID, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req request.UpdateDepartmentLocationsRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	locationIDs, err := parseIDs(req.LocationIDs, "locationIds")
	if err != nil {
		return err
	}

	output, err := h.updateLocationsCommand.Execute(c.Request().Context(), deptcmd.UpdateDepartmentLocationsInput{
		DepartmentID: departmentID,
		LocationIDs:  locationIDs,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToDepartmentResponse(output.Department))
}

// DeleteDepartment は部門を論理削除します
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c echo.Context) error {
	departmentID, err := parsePathID(c)
	if err != nil {
		return err
	}

	output, err := h.softDeleteCommand.Execute(c.Request().Context(), deptcmd.SoftDeleteDepartmentInput{DepartmentID: departmentID})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.SoftDeleteDepartmentResponse{
		ID:                 output.DepartmentID.String(),
		Path:               output.Path,
		UpdatedDescendants: output.UpdatedDescendants,
		DeletedLocations:   output.DeletedLocations,
		DeletedPositions:   output.DeletedPositions,
	})
}

func parsePathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewValidationError("invalid department ID", nil).WithField("id", "must be a valid UUID")
	}
	return id, nil
}

func parseOptionalID(value *string, field string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, apperror.NewValidationError("invalid "+field, nil).WithField(field, "must be a valid UUID")
	}
	return &id, nil
}

func parseIDs(values []string, field string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperror.NewValidationError("invalid "+field, nil).WithField(field, "must contain valid UUIDs")
		}
		ids[i] = id
	}
	return ids, nil
}
