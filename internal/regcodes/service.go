package regcodes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	"github.com/swingbaylabs/swingbay-backend/pkg/db"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/security"
)

// codeLength is the number of random characters in an admission code,
// rendered dash-grouped as XXXX-XXXX-XXXX.
const codeLength = 12

type codeRepository interface {
	Issue(ctx context.Context, code, issuedBy, notes string) (*models.RegistrationCode, error)
	FindActiveByCode(ctx context.Context, code string) (*models.RegistrationCode, error)
	List(ctx context.Context) ([]models.RegistrationCode, error)
}

// Service manages the single-use admission code lifecycle.
type Service interface {
	Issue(ctx context.Context, issuedBy, notes string) (*CodeDTO, error)
	Validate(ctx context.Context, code string) (*CodeDTO, error)
	List(ctx context.Context) ([]CodeDTO, error)
}

type service struct {
	repo     codeRepository
	retryCfg config.StorageRetryConfig
}

// NewService builds a registration code service.
func NewService(repo codeRepository, retryCfg config.StorageRetryConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("code repository required")
	}
	return &service{repo: repo, retryCfg: retryCfg}, nil
}

// Issue mints a fresh code and atomically supersedes whatever was active
// before. A generation collision on the code column or a concurrent issue
// hitting the single-active index both retry with a new random code.
func (s *service) Issue(ctx context.Context, issuedBy, notes string) (*CodeDTO, error) {
	issuedBy = strings.TrimSpace(issuedBy)
	if issuedBy == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issuer is required")
	}

	var row *models.RegistrationCode
	backoff := retry.WithMaxRetries(s.retryCfg.MaxAttempts, retry.NewExponential(s.retryCfg.BaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		code, genErr := security.GenerateRegistrationCode(codeLength)
		if genErr != nil {
			return genErr
		}
		created, issueErr := s.repo.Issue(ctx, code, issuedBy, notes)
		if issueErr != nil {
			if db.IsUniqueViolation(issueErr, "") {
				return retry.RetryableError(issueErr)
			}
			return issueErr
		}
		row = created
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue registration code")
	}
	return FromModel(row), nil
}

// Validate checks an admission code presented by a bay PC. Unknown and
// revoked codes are indistinguishable to the caller.
func (s *service) Validate(ctx context.Context, code string) (*CodeDTO, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid registration code")
	}

	row, err := s.repo.FindActiveByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid registration code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up registration code")
	}
	return FromModel(row), nil
}

// List returns the full issuance history for auditing.
func (s *service) List(ctx context.Context) ([]CodeDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list registration codes")
	}
	out := make([]CodeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
