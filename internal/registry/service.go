package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type storeRepository interface {
	FindStore(ctx context.Context, storeID string) (*models.Store, error)
	CreateStoreWithBays(ctx context.Context, store *models.Store, bays []models.Bay) error
	UpdateStoreWithBays(ctx context.Context, store *models.Store, newBays []models.Bay) error
	ListBays(ctx context.Context, storeID string) ([]models.Bay, error)
	FindBay(ctx context.Context, storeID, bayID string) (*models.Bay, error)
}

type bindingsReader interface {
	ActiveBayIDs(ctx context.Context, storeID string) (map[string]bool, error)
}

// Service exposes store and bay registry operations.
type Service interface {
	GetStore(ctx context.Context, storeID string) (*StoreDTO, error)
	ListBays(ctx context.Context, storeID string) (*BayListDTO, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	UpdateStore(ctx context.Context, storeID string, input UpdateStoreInput) (*StoreDTO, error)
	ResolveBay(ctx context.Context, storeID, bayNumber string) (*models.Bay, error)
}

type service struct {
	repo     storeRepository
	bindings bindingsReader
}

// NewService builds a registry service with the provided repositories.
func NewService(repo storeRepository, bindings bindingsReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("registry repository required")
	}
	if bindings == nil {
		return nil, fmt.Errorf("bindings reader required")
	}
	return &service{repo: repo, bindings: bindings}, nil
}

func (s *service) GetStore(ctx context.Context, storeID string) (*StoreDTO, error) {
	normalized, err := NormalizeStoreID(storeID)
	if err != nil {
		return nil, err
	}
	store, err := s.findStore(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return FromStoreModel(store), nil
}

func (s *service) ListBays(ctx context.Context, storeID string) (*BayListDTO, error) {
	normalized, err := NormalizeStoreID(storeID)
	if err != nil {
		return nil, err
	}
	store, err := s.findStore(ctx, normalized)
	if err != nil {
		return nil, err
	}

	bays, err := s.repo.ListBays(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bays")
	}
	occupied, err := s.bindings.ActiveBayIDs(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active bindings")
	}

	out := &BayListDTO{
		StoreID:   store.StoreID,
		BaysCount: store.BaysCount,
		Bays:      make([]BayDTO, 0, len(bays)),
	}
	for _, bay := range bays {
		out.Bays = append(out.Bays, BayDTO{
			BayNumber: bay.BayID,
			BayName:   bay.BayName,
			BayCode:   bay.BayCode,
			Status:    bay.Status.String(),
			Assigned:  occupied[bay.BayID],
		})
	}
	return out, nil
}

func (s *service) CreateStore(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	normalized, err := NormalizeStoreID(input.StoreID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.StoreName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if input.BaysCount < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bays count must be at least 1")
	}

	store := &models.Store{
		StoreID:   normalized,
		StoreName: name,
		BaysCount: input.BaysCount,
	}
	bays := materializeBays(normalized, 1, input.BaysCount)

	if err := s.repo.CreateStoreWithBays(ctx, store, bays); err != nil {
		if isDuplicateKey(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store already exists").
				WithDetails(map[string]string{"store_id": normalized})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromStoreModel(store), nil
}

func (s *service) UpdateStore(ctx context.Context, storeID string, input UpdateStoreInput) (*StoreDTO, error) {
	normalized, err := NormalizeStoreID(storeID)
	if err != nil {
		return nil, err
	}
	store, err := s.findStore(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
		store.StoreName = name
	}

	var newBays []models.Bay
	if input.BaysCount != nil {
		requested := *input.BaysCount
		if requested < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "bays count must be at least 1")
		}
		// Shrinking would orphan bay rows with live bindings, so capacity
		// only grows here; retiring bays is a manual operation.
		if requested < store.BaysCount {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "bays count cannot be reduced").
				WithDetails(map[string]int{"current": store.BaysCount, "requested": requested})
		}
		if requested > store.BaysCount {
			newBays = materializeBays(normalized, store.BaysCount+1, requested)
		}
		store.BaysCount = requested
	}

	if err := s.repo.UpdateStoreWithBays(ctx, store, newBays); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromStoreModel(store), nil
}

// ResolveBay validates that the bay number names a real, active bay of the
// store. A number beyond the store's capacity is reported as not found.
func (s *service) ResolveBay(ctx context.Context, storeID, bayNumber string) (*models.Bay, error) {
	normalizedStore, err := NormalizeStoreID(storeID)
	if err != nil {
		return nil, err
	}
	normalizedBay, err := NormalizeBayID(bayNumber)
	if err != nil {
		return nil, err
	}
	if _, err := s.findStore(ctx, normalizedStore); err != nil {
		return nil, err
	}

	bay, err := s.repo.FindBay(ctx, normalizedStore, normalizedBay)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown bay").
				WithDetails(map[string]string{"store_id": normalizedStore, "bay_number": normalizedBay})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find bay")
	}
	return bay, nil
}

func (s *service) findStore(ctx context.Context, storeID string) (*models.Store, error) {
	store, err := s.repo.FindStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find store")
	}
	return store, nil
}

func materializeBays(storeID string, from, to int) []models.Bay {
	bays := make([]models.Bay, 0, to-from+1)
	for n := from; n <= to; n++ {
		bayID := strconv.Itoa(n)
		bays = append(bays, models.Bay{
			StoreID: storeID,
			BayID:   bayID,
			BayName: fmt.Sprintf("Bay %d", n),
			BayCode: deriveBayCode(storeID, bayID),
			Status:  enums.BayStatusActive,
		})
	}
	return bays
}

// deriveBayCode produces the short opaque code printed on bay signage.
func deriveBayCode(storeID, bayID string) string {
	sum := sha256.Sum256([]byte(storeID + "/" + bayID))
	return strings.ToUpper(hex.EncodeToString(sum[:4]))
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
