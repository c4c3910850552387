package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-kiosk-api/internal/schedule"
	appErrors "github.com/noah-isme/course-kiosk-api/pkg/errors"
)

func TestCatalogServiceNotReadyBeforeLoad(t *testing.T) {
	svc := NewCatalogService(&sourceStub{ds: kioskDataset()}, nil, nil, nil, CatalogOptions{})
	assert.False(t, svc.Ready())

	_, err := svc.Snapshot()
	assert.ErrorIs(t, err, appErrors.ErrNotReady)
}

func TestCatalogServiceReload(t *testing.T) {
	source := &sourceStub{ds: kioskDataset()}
	svc := NewCatalogService(source, nil, NewMetricsService(), nil, CatalogOptions{})

	result, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Version)
	assert.Equal(t, "stub", result.Source)
	assert.Equal(t, 4, result.Courses)
	assert.Equal(t, 7, result.Classes)
	assert.Zero(t, result.Skipped)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026.1"}, snap.Periods)

	class, ok := snap.Class("3")
	require.True(t, ok)
	assert.Equal(t, "Prof. Maria Santos", class.Teacher.Name)
	assert.Equal(t, "Lab. Informática 2", class.Room.Name)

	result, err = svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Version)
	assert.Equal(t, 2, source.loads)
}

func TestCatalogServiceStrictIntegrityKeepsPreviousSnapshot(t *testing.T) {
	source := &sourceStub{ds: kioskDataset()}
	svc := NewCatalogService(source, nil, nil, nil, CatalogOptions{})
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	broken := kioskDataset()
	broken.Classes[6].RoomID = "99"
	source.ds = broken

	_, err = svc.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrIntegrity)

	appErr := appErrors.FromError(err)
	assert.Equal(t, &schedule.IntegrityError{ClassID: "7", Field: "room_id", MissingID: "99"}, appErr.Details)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Len(t, snap.Classes, 7)
}

func TestCatalogServiceLenientSkipsBadRecords(t *testing.T) {
	ds := kioskDataset()
	ds.Classes[0].TeacherID = "99"
	ds.Classes[1].StartTime = "25:00"

	svc := NewCatalogService(&sourceStub{ds: ds}, nil, nil, nil, CatalogOptions{SkipInvalid: true})
	result, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Classes)
	assert.Equal(t, 2, result.Skipped)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	_, ok := snap.Class("1")
	assert.False(t, ok)
}

func TestCatalogServiceStrictValidation(t *testing.T) {
	ds := kioskDataset()
	ds.Classes[2].EndTime = "07:00"

	svc := NewCatalogService(&sourceStub{ds: ds}, nil, nil, nil, CatalogOptions{})
	_, err := svc.Reload(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	var verr *schedule.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "3", verr.ID)
	assert.False(t, svc.Ready())
}

func TestCatalogServiceSourceError(t *testing.T) {
	svc := NewCatalogService(&sourceStub{err: errors.New("disk unplugged")}, nil, nil, nil, CatalogOptions{})
	_, err := svc.Reload(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.ErrorContains(t, err, "disk unplugged")
}
