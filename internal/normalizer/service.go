package normalizer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/swingbaylabs/swingbay-backend/internal/registry"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type bindingSource interface {
	ListBindings(ctx context.Context, storeID string) ([]models.PCBinding, error)
	ApplyBayIDs(ctx context.Context, updates map[uuid.UUID]string) error
	TightenBayIDNotNull(ctx context.Context) error
}

// Service scans the binding fleet for identifier drift and repairs what it
// safely can.
type Service interface {
	Scan(ctx context.Context, storeID string) (*ScanReport, error)
	Repair(ctx context.Context, input RepairInput) (*RepairReport, error)
}

type service struct {
	repo bindingSource
}

// NewService builds the identifier normalizer.
func NewService(repo bindingSource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("binding source required")
	}
	return &service{repo: repo}, nil
}

// Scan classifies every binding row without touching anything.
func (s *service) Scan(ctx context.Context, storeID string) (*ScanReport, error) {
	rows, err := s.repo.ListBindings(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bindings")
	}
	report := classify(rows)
	report.StoreID = storeID
	return report, nil
}

// Repair runs the de-pad and inference passes, skips duplicates, and
// tightens the bay_id constraint once the fleet is clean. Running it twice
// changes nothing the second time.
func (s *service) Repair(ctx context.Context, input RepairInput) (*RepairReport, error) {
	rows, err := s.repo.ListBindings(ctx, input.StoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bindings")
	}
	before := classify(rows)

	report := &RepairReport{DryRun: input.DryRun}
	updates := map[uuid.UUID]string{}

	// Slots already claimed by an active row, so inference never creates a
	// new collision.
	occupied := activeSlots(rows)

	for _, finding := range before.Findings {
		switch finding.Class {
		case FindingZeroPadded:
			updates[finding.BindingID] = finding.ProposedBayID
			report.Depadded++

		case FindingNullBayID:
			// Two active null rows can propose the same free slot; only the
			// first one claims it.
			slotKey := finding.StoreID + "/" + finding.ProposedBayID
			if !finding.Inferable || (finding.Active && occupied[slotKey]) {
				report.Unresolved = append(report.Unresolved, finding)
				continue
			}
			updates[finding.BindingID] = finding.ProposedBayID
			report.Inferred++
			if finding.Active {
				occupied[slotKey] = true
			}

		case FindingDuplicateSlot:
			report.Unresolved = append(report.Unresolved, finding)
		}
	}

	if input.DryRun {
		report.After = *simulate(rows, updates)
		report.After.StoreID = input.StoreID
		return report, nil
	}

	var errs error
	if len(updates) > 0 {
		if err := s.repo.ApplyBayIDs(ctx, updates); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("apply bay ids: %w", err))
		}
	}

	after, err := s.Scan(ctx, input.StoreID)
	if err != nil {
		errs = multierr.Append(errs, err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "repair pass")
	}
	report.After = *after

	// Tightening is global, so a store-scoped pass never attempts it.
	if input.StoreID == "" && after.Clean() {
		if err := s.repo.TightenBayIDNotNull(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tighten bay_id constraint: %w", err))
		} else {
			report.ConstraintTightened = true
		}
	}

	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "repair pass")
	}
	return report, nil
}

// classify buckets the rows. Duplicate detection works on canonical forms,
// so "3" and "03" held by two different active PCs count as a duplicate.
func classify(rows []models.PCBinding) *ScanReport {
	report := &ScanReport{Total: len(rows)}

	canonicalOf := func(b *models.PCBinding) (string, bool) {
		if b.BayID == nil {
			return "", false
		}
		canon, err := registry.NormalizeBayID(*b.BayID)
		if err != nil {
			return "", false
		}
		return canon, true
	}

	// Group active rows by canonical slot for duplicate detection.
	slots := map[string][]uuid.UUID{}
	for i := range rows {
		row := &rows[i]
		if row.Status != enums.BindingStatusActive {
			continue
		}
		if canon, ok := canonicalOf(row); ok {
			key := row.StoreID + "/" + canon
			slots[key] = append(slots[key], row.ID)
		}
	}

	occupied := activeSlots(rows)

	for i := range rows {
		row := &rows[i]
		canon, hasCanon := canonicalOf(row)

		if row.Status == enums.BindingStatusActive && hasCanon {
			if ids := slots[row.StoreID+"/"+canon]; len(ids) > 1 {
				report.Duplicates++
				report.Findings = append(report.Findings, Finding{
					BindingID:     row.ID,
					PCUniqueID:    row.PCUniqueID,
					StoreID:       row.StoreID,
					Class:         FindingDuplicateSlot,
					CurrentBayID:  row.BayID,
					ProposedBayID: canon,
					ConflictsWith: others(ids, row.ID),
					Active:        true,
				})
				continue
			}
		}

		switch {
		case row.BayID == nil:
			report.NullBayID++
			finding := Finding{
				BindingID:  row.ID,
				PCUniqueID: row.PCUniqueID,
				StoreID:    row.StoreID,
				Class:      FindingNullBayID,
				BayName:    row.BayName,
				Active:     row.Status == enums.BindingStatusActive,
			}
			if inferred, ok := registry.BayIDFromName(row.BayName); ok {
				taken := row.Status == enums.BindingStatusActive && occupied[row.StoreID+"/"+inferred]
				if !taken {
					finding.Inferable = true
					finding.ProposedBayID = inferred
				}
			}
			report.Findings = append(report.Findings, finding)

		case hasCanon && canon != *row.BayID:
			report.ZeroPadded++
			report.Findings = append(report.Findings, Finding{
				BindingID:     row.ID,
				PCUniqueID:    row.PCUniqueID,
				StoreID:       row.StoreID,
				Class:         FindingZeroPadded,
				CurrentBayID:  row.BayID,
				ProposedBayID: canon,
			})

		default:
			report.OK++
		}
	}
	return report
}

// activeSlots maps store/canonical-bay keys to occupancy among active rows.
func activeSlots(rows []models.PCBinding) map[string]bool {
	occupied := map[string]bool{}
	for i := range rows {
		row := &rows[i]
		if row.Status != enums.BindingStatusActive || row.BayID == nil {
			continue
		}
		if canon, err := registry.NormalizeBayID(*row.BayID); err == nil {
			occupied[row.StoreID+"/"+canon] = true
		}
	}
	return occupied
}

// simulate applies the planned updates in memory and re-classifies, so a
// dry run can show the post-repair state.
func simulate(rows []models.PCBinding, updates map[uuid.UUID]string) *ScanReport {
	patched := make([]models.PCBinding, len(rows))
	copy(patched, rows)
	for i := range patched {
		if bayID, ok := updates[patched[i].ID]; ok {
			value := bayID
			patched[i].BayID = &value
		}
	}
	return classify(patched)
}

func others(ids []uuid.UUID, self uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids)-1)
	for _, id := range ids {
		if id != self {
			out = append(out, id)
		}
	}
	return out
}
