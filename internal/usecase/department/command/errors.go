package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

// fieldErrors はフィールド単位の検証エラーを集めます
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field string, err error) {
	if err != nil {
		*f = append(*f, apperror.FieldError{Field: field, Message: err.Error()})
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError("invalid department input", f)
}

// domainError はドメインの番兵エラーをAppErrorに変換します
func domainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrDepartmentSelfParent):
		return apperror.NewValidationError(err.Error(), nil).WithField("parentId", err.Error())
	case errors.Is(err, entity.ErrDepartmentCircularMove):
		return apperror.NewConflictError(err.Error())
	case errors.Is(err, entity.ErrDepartmentLocationsRequired),
		errors.Is(err, entity.ErrDepartmentDuplicateLocation):
		return apperror.NewValidationError(err.Error(), nil).WithField("locationIds", err.Error())
	case errors.Is(err, entity.ErrDepartmentPathInvariant),
		errors.Is(err, valueobject.ErrPathStripRoot):
		return apperror.NewInternalError(err)
	}
	return err
}

func departmentNotFound(id uuid.UUID) error {
	return apperror.NewNotFoundError("department").WithField("departmentId", id.String())
}

func parentNotFound(id uuid.UUID) error {
	return apperror.NewNotFoundError("parent department").WithField("parentId", id.String())
}

// lockActive はIDで部門をロックし、有効な部門であることを確認します
func lockActive(
	ctx context.Context,
	repo repository.DepartmentRepository,
	id uuid.UUID,
	notFound func(uuid.UUID) error,
) (*entity.Department, error) {
	department, err := repo.FindByIDWithLock(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, notFound(id)
		}
		return nil, err
	}
	if !department.IsActive() {
		return nil, notFound(id)
	}
	return department, nil
}

// ensureLocationsActive は全てのロケーションが存在し有効であることを確認します
func ensureLocationsActive(ids []uuid.UUID, found []*entity.Location) error {
	active := make(map[uuid.UUID]bool, len(found))
	for _, l := range found {
		active[l.ID] = l.IsActive()
	}
	for _, id := range ids {
		if !active[id] {
			return apperror.NewNotFoundError("location").WithField("locationIds", fmt.Sprintf("location %s not found", id))
		}
	}
	return nil
}
