package response

import (
	"time"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	deptqry "github.com/Radmir675/Divisions-sub000/internal/usecase/department/query"
)

// DepartmentResponse は部門レスポンスです
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Identifier  string    `json:"identifier"`
	ParentID    *string   `json:"parentId"`
	Path        string    `json:"path"`
	Depth       int16     `json:"depth"`
	IsActive    bool      `json:"isActive"`
	LocationIDs []string  `json:"locationIds"`
	PositionIDs []string  `json:"positionIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SoftDeleteDepartmentResponse は部門論理削除レスポンスです
type SoftDeleteDepartmentResponse struct {
	ID                 string `json:"id"`
	Path               string `json:"path"`
	UpdatedDescendants int    `json:"updatedDescendants"`
	DeletedLocations   int    `json:"deletedLocations"`
	DeletedPositions   int    `json:"deletedPositions"`
}

// ToDepartmentResponse はエンティティからレスポンスに変換します
func ToDepartmentResponse(department *entity.Department) DepartmentResponse {
	return FromDepartmentView(deptqry.NewDepartmentView(department))
}

// FromDepartmentView は読み取りビューからレスポンスに変換します
func FromDepartmentView(view deptqry.DepartmentView) DepartmentResponse {
	var parentID *string
	if view.ParentID != nil {
		id := view.ParentID.String()
		parentID = &id
	}

	locationIDs := make([]string, len(view.LocationIDs))
	for i, id := range view.LocationIDs {
		locationIDs[i] = id.String()
	}
	positionIDs := make([]string, len(view.PositionIDs))
	for i, id := range view.PositionIDs {
		positionIDs[i] = id.String()
	}

	return DepartmentResponse{
		ID:          view.ID.String(),
		Name:        view.Name,
		Identifier:  view.Identifier,
		ParentID:    parentID,
		Path:        view.Path,
		Depth:       view.Depth,
		IsActive:    view.IsActive,
		LocationIDs: locationIDs,
		PositionIDs: positionIDs,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

// FromDepartmentViews はビューのリストからレスポンスリストに変換します
func FromDepartmentViews(views []deptqry.DepartmentView) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(views))
	for i, view := range views {
		responses[i] = FromDepartmentView(view)
	}
	return responses
}
