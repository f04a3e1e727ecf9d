package normalizer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

func setupNormalizerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:normalizer_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS pc_bindings (
  id TEXT PRIMARY KEY,
  pc_unique_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  bay_id TEXT,
  bay_name TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  registered_at DATETIME NOT NULL,
  released_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := db.Exec(schema).Error; err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func seedBinding(t *testing.T, db *gorm.DB, store, pc string, bayID *string, bayName string) models.PCBinding {
	t.Helper()
	row := models.PCBinding{
		ID:           uuid.New(),
		PCUniqueID:   pc,
		StoreID:      store,
		BayID:        bayID,
		BayName:      bayName,
		Status:       enums.BindingStatusActive,
		RegisteredAt: time.Now().UTC(),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed binding: %v", err)
	}
	return row
}

func TestListBindingsFiltersByStore(t *testing.T) {
	t.Parallel()

	db := setupNormalizerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	padded := "03"
	seedBinding(t, db, "GANGNAM-01", "PC-A", &padded, "Bay 3")
	seedBinding(t, db, "MAPO-02", "PC-B", nil, "Bay 1")

	all, err := repo.ListBindings(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}

	scoped, err := repo.ListBindings(ctx, "MAPO-02")
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(scoped) != 1 || scoped[0].PCUniqueID != "PC-B" {
		t.Fatalf("unexpected scoped rows: %+v", scoped)
	}
}

func TestApplyBayIDsWritesAllRows(t *testing.T) {
	t.Parallel()

	db := setupNormalizerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	padded := "03"
	rowA := seedBinding(t, db, "GANGNAM-01", "PC-A", &padded, "Bay 3")
	rowB := seedBinding(t, db, "GANGNAM-01", "PC-B", nil, "Bay 5")

	err := repo.ApplyBayIDs(ctx, map[uuid.UUID]string{
		rowA.ID: "3",
		rowB.ID: "5",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	var stored []models.PCBinding
	if err := db.Order("pc_unique_id").Find(&stored).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored[0].BayID == nil || *stored[0].BayID != "3" {
		t.Fatalf("row a bay_id = %v, want 3", stored[0].BayID)
	}
	if stored[1].BayID == nil || *stored[1].BayID != "5" {
		t.Fatalf("row b bay_id = %v, want 5", stored[1].BayID)
	}
}

func TestApplyBayIDsEmptyIsNoop(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupNormalizerTestDB(t))
	if err := repo.ApplyBayIDs(context.Background(), nil); err != nil {
		t.Fatalf("empty apply: %v", err)
	}
}

func TestTightenIsNoopOffPostgres(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupNormalizerTestDB(t))
	if err := repo.TightenBayIDNotNull(context.Background()); err != nil {
		t.Fatalf("tighten on sqlite: %v", err)
	}
}

func TestServiceAgainstRealStorage(t *testing.T) {
	t.Parallel()

	db := setupNormalizerTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	padded := "04"
	seedBinding(t, db, "GANGNAM-01", "PC-PAD", &padded, "Bay 4")
	seedBinding(t, db, "GANGNAM-01", "PC-NULL", nil, "Bay 5")

	report, err := svc.Repair(ctx, RepairInput{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Depadded)
	require.Equal(t, 1, report.Inferred)
	require.Empty(t, report.Unresolved)
	require.True(t, report.After.Clean(), "expected clean fleet: %+v", report.After)

	var rows []models.PCBinding
	require.NoError(t, db.Order("pc_unique_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].BayID)
	require.Equal(t, "5", *rows[0].BayID)
	require.NotNil(t, rows[1].BayID)
	require.Equal(t, "4", *rows[1].BayID)

	again, err := svc.Repair(ctx, RepairInput{})
	require.NoError(t, err)
	require.Zero(t, again.Depadded)
	require.Zero(t, again.Inferred)
}
