package di

import (
	"context"
	"time"

	"github.com/Radmir675/Divisions-sub000/internal/domain/repository"
	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/database"
	infraRepo "github.com/Radmir675/Divisions-sub000/internal/infrastructure/repository"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/worker"
	deptcmd "github.com/Radmir675/Divisions-sub000/internal/usecase/department/command"
	deptqry "github.com/Radmir675/Divisions-sub000/internal/usecase/department/query"
)

// DepartmentRepositories は部門関連のリポジトリを保持します
type DepartmentRepositories struct {
	DepartmentRepo repository.DepartmentRepository
	HierarchyRepo  repository.DepartmentHierarchyRepository
	LocationRepo   repository.LocationRepository
	PositionRepo   repository.PositionRepository
}

// NewDepartmentRepositories は新しいDepartmentRepositoriesを作成します
func NewDepartmentRepositories(txManager *database.TxManager) *DepartmentRepositories {
	return &DepartmentRepositories{
		DepartmentRepo: infraRepo.NewDepartmentRepository(txManager),
		HierarchyRepo:  infraRepo.NewDepartmentHierarchyRepository(txManager),
		LocationRepo:   infraRepo.NewLocationRepository(txManager),
		PositionRepo:   infraRepo.NewPositionRepository(txManager),
	}
}

// DepartmentUseCases は部門関連のUseCaseを保持します
type DepartmentUseCases struct {
	// Commands
	Create          *deptcmd.CreateDepartmentCommand
	Rename          *deptcmd.RenameDepartmentCommand
	Move            *deptcmd.MoveDepartmentCommand
	UpdateLocations *deptcmd.UpdateDepartmentLocationsCommand
	SoftDelete      *deptcmd.SoftDeleteDepartmentCommand
	Cleanup         *deptcmd.CleanupDepartmentsCommand

	// Queries
	Get          *deptqry.GetDepartmentQuery
	ListChildren *deptqry.ListChildDepartmentsQuery
}

// NewDepartmentUseCases は新しいDepartmentUseCasesを作成します
func NewDepartmentUseCases(
	repos *DepartmentRepositories,
	txManager repository.TransactionManager,
	hierarchyService service.DepartmentHierarchyService,
	clock service.Clock,
	invalidator service.DepartmentCacheInvalidator,
	readCache deptqry.ReadCache,
) *DepartmentUseCases {
	return &DepartmentUseCases{
		Create:          deptcmd.NewCreateDepartmentCommand(repos.DepartmentRepo, repos.LocationRepo, txManager, invalidator),
		Rename:          deptcmd.NewRenameDepartmentCommand(repos.DepartmentRepo, txManager, invalidator),
		Move:            deptcmd.NewMoveDepartmentCommand(repos.DepartmentRepo, repos.HierarchyRepo, txManager, hierarchyService, invalidator),
		UpdateLocations: deptcmd.NewUpdateDepartmentLocationsCommand(repos.DepartmentRepo, repos.LocationRepo, txManager, invalidator),
		SoftDelete: deptcmd.NewSoftDeleteDepartmentCommand(
			repos.DepartmentRepo,
			repos.HierarchyRepo,
			repos.LocationRepo,
			repos.PositionRepo,
			txManager,
			clock,
			invalidator,
		),
		Cleanup: deptcmd.NewCleanupDepartmentsCommand(
			repos.DepartmentRepo,
			repos.HierarchyRepo,
			repos.LocationRepo,
			repos.PositionRepo,
			txManager,
			hierarchyService,
			clock,
			invalidator,
		),

		Get:          deptqry.NewGetDepartmentQuery(repos.DepartmentRepo, readCache),
		ListChildren: deptqry.NewListChildDepartmentsQuery(repos.DepartmentRepo, readCache),
	}
}

// CleanupFunc はワーカーから呼ばれる物理削除スイープを返します
func (u *DepartmentUseCases) CleanupFunc() func(ctx context.Context, retention time.Duration) (worker.CleanupResult, error) {
	return func(ctx context.Context, retention time.Duration) (worker.CleanupResult, error) {
		output, err := u.Cleanup.Execute(ctx, deptcmd.CleanupDepartmentsInput{Retention: retention})
		if err != nil {
			return worker.CleanupResult{}, err
		}
		return worker.CleanupResult{
			Departments: output.DeletedDepartments,
			Locations:   output.DeletedLocations,
			Positions:   output.DeletedPositions,
		}, nil
	}
}
