package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/internal/models"
)

func setupTestService(t *testing.T) (*ServiceImpl, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StationSettings{}))
	return NewService(db, Defaults{}), db
}

func strPtr(s string) *string { return &s }

func TestGet_CreatesDefaultsOnFirstAccess(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.Empty(t, settings.Name)

	var count int64
	require.NoError(t, db.Model(&models.StationSettings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A second Get must reuse the same row.
	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
	require.NoError(t, db.Model(&models.StationSettings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGet_SeedsRowFromConfiguredDefaults(t *testing.T) {
	_, db := setupTestService(t)
	svc := NewService(db, Defaults{
		Name:        "KEXP Archive",
		Description: "Every show, kept",
		Timezone:    "America/Los_Angeles",
	})

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "KEXP Archive", settings.Name)
	assert.Equal(t, "Every show, kept", settings.Description)
	assert.Equal(t, "America/Los_Angeles", settings.Timezone)
}

func TestGet_UnloadableDefaultTimezoneFallsBackToUTC(t *testing.T) {
	_, db := setupTestService(t)
	svc := NewService(db, Defaults{Timezone: "Not/A_Zone"})

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UTC", settings.Timezone)
}

func TestUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateParams{
		Name:     strPtr("WKRP Archive"),
		Timezone: strPtr("America/New_York"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, UpdateParams{Description: strPtr("Late night tapes")})
	require.NoError(t, err)
	assert.Equal(t, "WKRP Archive", updated.Name)
	assert.Equal(t, "Late night tapes", updated.Description)
	assert.Equal(t, "America/New_York", updated.Timezone)
}

func TestUpdate_RejectsInvalidTimezoneBeforeWriting(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateParams{Name: strPtr("Keep")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateParams{
		Name:     strPtr("Discarded"),
		Timezone: strPtr("Mars/Olympus_Mons"),
	})
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Keep", settings.Name)
	assert.Equal(t, "UTC", settings.Timezone)
}

func TestLocation_ResolvesStoredZone(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateParams{Timezone: strPtr("Europe/Berlin")})
	require.NoError(t, err)

	loc, err := svc.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLocation_FallsBackToUTCForUnloadableZone(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	// Corrupt the stored zone behind the service's back.
	require.NoError(t, db.Model(&models.StationSettings{}).
		Where("1 = 1").Update("timezone", "Not/A_Zone").Error)

	loc, err := svc.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}
