package cron

import (
	"context"
	"fmt"

	"github.com/swingbaylabs/swingbay-backend/internal/normalizer"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

// NormalizerJobParams configure the scheduled identifier sweep.
type NormalizerJobParams struct {
	Logger  *logger.Logger
	Service normalizer.Service
	// StoreID restricts the sweep to one store; empty sweeps the fleet.
	StoreID string
}

type normalizerJob struct {
	logg    *logger.Logger
	svc     normalizer.Service
	storeID string
}

// NewNormalizerJob builds the nightly bay identifier sweep.
func NewNormalizerJob(params NormalizerJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("normalizer service required")
	}
	return &normalizerJob{
		logg:    params.Logger,
		svc:     params.Service,
		storeID: params.StoreID,
	}, nil
}

func (j *normalizerJob) Name() string { return "bay-id-normalizer" }

func (j *normalizerJob) Run(ctx context.Context) error {
	report, err := j.svc.Repair(ctx, normalizer.RepairInput{StoreID: j.storeID})
	if err != nil {
		return fmt.Errorf("bay id repair: %w", err)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"store_id":             j.storeID,
		"depadded":             report.Depadded,
		"inferred":             report.Inferred,
		"unresolved":           len(report.Unresolved),
		"constraint_tightened": report.ConstraintTightened,
	})
	if len(report.Unresolved) > 0 {
		j.logg.Warn(logCtx, "bay id sweep left rows needing manual resolution")
		return nil
	}
	j.logg.Info(logCtx, "bay id sweep complete")
	return nil
}
