package command_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Radmir675/Divisions-sub000/internal/domain/entity"
	"github.com/Radmir675/Divisions-sub000/internal/domain/valueobject"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newRootDepartment(t *testing.T, identifier string) *entity.Department {
	t.Helper()
	return newDepartmentUnder(t, identifier, nil)
}

func newDepartmentUnder(t *testing.T, identifier string, parent *entity.Department) *entity.Department {
	t.Helper()
	name, err := valueobject.NewDepartmentName("Department " + identifier)
	require.NoError(t, err)
	id, err := valueobject.NewIdentifier(identifier)
	require.NoError(t, err)

	var d *entity.Department
	if parent == nil {
		d, err = entity.NewParentDepartment(name, id, []uuid.UUID{uuid.New()})
	} else {
		d, err = entity.NewChildDepartment(name, id, parent, []uuid.UUID{uuid.New()})
	}
	require.NoError(t, err)
	return d
}

func newSoftDeletedDepartment(t *testing.T, identifier string, parent *entity.Department, at time.Time) *entity.Department {
	t.Helper()
	d := newDepartmentUnder(t, identifier, parent)
	d.SoftDelete(at)
	return d
}

func newActiveLocation(t *testing.T) *entity.Location {
	t.Helper()
	name, err := valueobject.NewLocationName("Head Office")
	require.NoError(t, err)
	return entity.NewLocation(name, valueobject.UTCTimezone())
}

func newActivePosition(t *testing.T) *entity.Position {
	t.Helper()
	name, err := valueobject.NewPositionName("Engineer")
	require.NoError(t, err)
	return entity.NewPosition(name, "")
}

// rawIdentifier builds an identifier without validation, as stored for deleted departments
func rawIdentifier(value string) valueobject.Identifier {
	return valueobject.ReconstructIdentifier(value)
}
