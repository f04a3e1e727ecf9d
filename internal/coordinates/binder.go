package coordinates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type assignmentRepository interface {
	FindByKey(ctx context.Context, brand, resolution string, version int) (*models.CoordinateTemplate, error)
	FindByFilename(ctx context.Context, filename string) (*models.CoordinateTemplate, error)
	UpsertAssignment(ctx context.Context, storeID, bayID string, templateID uuid.UUID) (*models.CoordinateAssignment, error)
	FindAssignment(ctx context.Context, storeID, bayID string) (*models.CoordinateAssignment, *models.CoordinateTemplate, error)
}

type bayResolver interface {
	ResolveBay(ctx context.Context, storeID, bayNumber string) (*models.Bay, error)
}

// Binder points bays at catalogue templates.
type Binder interface {
	Assign(ctx context.Context, input AssignInput) (*AssignmentDTO, error)
	LookupForBay(ctx context.Context, storeID, bayNumber string) (*AssignmentDTO, error)
}

type binder struct {
	repo     assignmentRepository
	registry bayResolver
}

// NewBinder builds the bay assignment service.
func NewBinder(repo assignmentRepository, registry bayResolver) (Binder, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if registry == nil {
		return nil, fmt.Errorf("bay resolver required")
	}
	return &binder{repo: repo, registry: registry}, nil
}

// Assign points the bay at a template, selected either by filename or by
// (brand, resolution, version). A later assignment simply replaces the
// earlier one.
func (b *binder) Assign(ctx context.Context, input AssignInput) (*AssignmentDTO, error) {
	bay, err := b.registry.ResolveBay(ctx, input.StoreID, input.BayNumber)
	if err != nil {
		return nil, err
	}

	tpl, err := b.resolveTemplate(ctx, input)
	if err != nil {
		return nil, err
	}

	assignment, err := b.repo.UpsertAssignment(ctx, bay.StoreID, bay.BayID, tpl.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign template")
	}
	return &AssignmentDTO{
		Brand:      tpl.Brand,
		Resolution: tpl.Resolution,
		Version:    tpl.Version,
		Filename:   tpl.Filename,
		AssignedAt: assignment.AssignedAt,
	}, nil
}

// LookupForBay returns the bay's assigned template, or nil when the bay has
// not been configured yet.
func (b *binder) LookupForBay(ctx context.Context, storeID, bayNumber string) (*AssignmentDTO, error) {
	bay, err := b.registry.ResolveBay(ctx, storeID, bayNumber)
	if err != nil {
		return nil, err
	}

	assignment, tpl, err := b.repo.FindAssignment(ctx, bay.StoreID, bay.BayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
	}
	return &AssignmentDTO{
		Brand:      tpl.Brand,
		Resolution: tpl.Resolution,
		Version:    tpl.Version,
		Filename:   tpl.Filename,
		AssignedAt: assignment.AssignedAt,
	}, nil
}

func (b *binder) resolveTemplate(ctx context.Context, input AssignInput) (*models.CoordinateTemplate, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename != "" {
		tpl, err := b.repo.FindByFilename(ctx, filename)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown template")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
		}
		return tpl, nil
	}

	brand, resolution, err := normalizeCatalogKey(input.Brand, input.Resolution)
	if err != nil {
		return nil, err
	}
	if input.Version < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "version must be a positive integer")
	}
	tpl, err := b.repo.FindByKey(ctx, brand, resolution, input.Version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown template")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	return tpl, nil
}
