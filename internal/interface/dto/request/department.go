package request

// CreateDepartmentRequest は部門作成リクエストです
type CreateDepartmentRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=150"`
	Identifier  string   `json:"identifier" validate:"required,identifier"`
	ParentID    *string  `json:"parentId" validate:"omitempty,uuid"`
	LocationIDs []string `json:"locationIds" validate:"required,min=1,unique,dive,uuid"`
}

// RenameDepartmentRequest は部門名変更リクエストです
type RenameDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=3,max=150"`
}

// MoveDepartmentRequest は部門移動リクエストです。parentIdがnullの場合はルートへ移動します
type MoveDepartmentRequest struct {
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

// UpdateDepartmentLocationsRequest はロケーション置き換えリクエストです
type UpdateDepartmentLocationsRequest struct {
	LocationIDs []string `json:"locationIds" validate:"required,min=1,unique,dive,uuid"`
}
