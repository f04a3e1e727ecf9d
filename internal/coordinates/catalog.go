package coordinates

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	"github.com/swingbaylabs/swingbay-backend/pkg/db"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/types"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

const templateIndexName = "ux_coordinate_templates_brand_res_ver"

// requiredRegions are the metric tiles every calibration template must
// locate on screen.
var requiredRegions = []string{
	"ball_speed",
	"club_speed",
	"launch_angle",
	"back_spin",
	"side_spin",
	"carry_distance",
}

var (
	brandRe      = regexp.MustCompile(`^[a-z0-9_]+$`)
	resolutionRe = regexp.MustCompile(`^[0-9]{3,5}x[0-9]{3,5}$`)
)

type templateRepository interface {
	CreateNextVersion(ctx context.Context, brand, resolution string, payload types.RegionMap, filenameFor func(version int) string) (*models.CoordinateTemplate, error)
	ListByBrand(ctx context.Context, brand string) ([]models.CoordinateTemplate, error)
	FindByKey(ctx context.Context, brand, resolution string, version int) (*models.CoordinateTemplate, error)
}

// Catalog manages the versioned template catalogue.
type Catalog interface {
	Upload(ctx context.Context, input UploadInput) (*TemplateDTO, error)
	List(ctx context.Context, brand string) ([]TemplateSummaryDTO, error)
	Get(ctx context.Context, brand, resolution string, version int) (*TemplateDTO, error)
}

type catalog struct {
	repo     templateRepository
	retryCfg config.StorageRetryConfig
}

// NewCatalog builds the template catalogue service.
func NewCatalog(repo templateRepository, retryCfg config.StorageRetryConfig) (Catalog, error) {
	if repo == nil {
		return nil, fmt.Errorf("template repository required")
	}
	return &catalog{repo: repo, retryCfg: retryCfg}, nil
}

// Upload validates the payload and appends a new version for the (brand,
// resolution) pair. Identical payload bytes still produce a new version;
// the catalogue is append-only.
func (c *catalog) Upload(ctx context.Context, input UploadInput) (*TemplateDTO, error) {
	brand, resolution, err := normalizeCatalogKey(input.Brand, input.Resolution)
	if err != nil {
		return nil, err
	}
	if problems := validatePayload(input.Payload); len(problems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "invalid template payload").
			WithDetails(map[string]any{"problems": problems})
	}

	filenameFor := func(version int) string {
		return fmt.Sprintf("%s_%s_v%d.json", brand, resolution, version)
	}

	var tpl *models.CoordinateTemplate
	backoff := retry.WithMaxRetries(c.retryCfg.MaxAttempts, retry.NewExponential(c.retryCfg.BaseDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		created, createErr := c.repo.CreateNextVersion(ctx, brand, resolution, input.Payload, filenameFor)
		if createErr != nil {
			// A concurrent upload claimed this version number first.
			if db.IsUniqueViolation(createErr, templateIndexName) {
				return retry.RetryableError(createErr)
			}
			return createErr
		}
		tpl = created
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store template")
	}
	return templateFromModel(tpl), nil
}

// List returns the brand's catalogue grouped by resolution, newest version
// first within each resolution.
func (c *catalog) List(ctx context.Context, brand string) ([]TemplateSummaryDTO, error) {
	normalized := strings.ToLower(strings.TrimSpace(brand))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand is required")
	}

	rows, err := c.repo.ListByBrand(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}

	out := make([]TemplateSummaryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, summaryFromModel(&rows[i]))
	}
	// The repo orders this already; keep the contract independent of the
	// storage engine's collation.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Resolution != out[j].Resolution {
			return out[i].Resolution < out[j].Resolution
		}
		return out[i].Version > out[j].Version
	})
	return out, nil
}

// Get loads one template with its full payload.
func (c *catalog) Get(ctx context.Context, brand, resolution string, version int) (*TemplateDTO, error) {
	normalizedBrand, normalizedRes, err := normalizeCatalogKey(brand, resolution)
	if err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "version must be a positive integer")
	}

	tpl, err := c.repo.FindByKey(ctx, normalizedBrand, normalizedRes, version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown template")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	return templateFromModel(tpl), nil
}

func normalizeCatalogKey(brand, resolution string) (string, string, error) {
	normalizedBrand := strings.ToLower(strings.TrimSpace(brand))
	if !brandRe.MatchString(normalizedBrand) {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "brand must be lowercase letters, digits or underscores")
	}
	normalizedRes := strings.ToLower(strings.TrimSpace(resolution))
	if !resolutionRe.MatchString(normalizedRes) {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "resolution must look like 1920x1080")
	}
	return normalizedBrand, normalizedRes, nil
}

// validatePayload checks the region map: all required regions present, every
// rectangle inside the unit square with positive extent. Extra regions are
// allowed.
func validatePayload(payload types.RegionMap) []string {
	var problems []string
	if len(payload) == 0 {
		return []string{"payload has no regions"}
	}

	for _, key := range requiredRegions {
		if _, ok := payload[key]; !ok {
			problems = append(problems, fmt.Sprintf("missing required region %q", key))
		}
	}

	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rect := payload[name]
		if rect.W <= 0 || rect.H <= 0 {
			problems = append(problems, fmt.Sprintf("region %q has non-positive extent", name))
			continue
		}
		if rect.X < 0 || rect.Y < 0 || rect.X+rect.W > 1 || rect.Y+rect.H > 1 {
			problems = append(problems, fmt.Sprintf("region %q leaves the unit square", name))
		}
	}
	return problems
}
