// Copyright (c) 2026 Rerec. All rights reserved.

package record_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladekjaer/rerec/internal/platform/apperr"
	"github.com/ladekjaer/rerec/internal/platform/sec"
	"github.com/ladekjaer/rerec/internal/record"
)

// # Test Fakes

// fakeRepository routes commits into per-model slices, like the real store
// routes into per-model tables. It enforces id uniqueness the way the
// primary key does: a duplicate commit fails, it never overwrites.
type fakeRepository struct {
	ds18b20   []*record.Record
	bme280    []*record.Record
	commitErr error
}

func (repo *fakeRepository) CommitRecord(_ context.Context, rec *record.Record) (string, error) {
	if repo.commitErr != nil {
		return "", repo.commitErr
	}

	for _, existing := range append(append([]*record.Record{}, repo.ds18b20...), repo.bme280...) {
		if existing.ID == rec.ID {
			return "", apperr.Persistence(errors.New(`duplicate key value violates unique constraint "records_pkey"`))
		}
	}

	switch rec.Reading.(type) {
	case record.DS18B20:
		repo.ds18b20 = append(repo.ds18b20, rec)
	case record.BME280:
		repo.bme280 = append(repo.bme280, rec)
	default:
		return "", errors.New("unsupported sensor model")
	}

	return rec.ID, nil
}

func (repo *fakeRepository) ListDS18B20(_ context.Context) ([]*record.Record, error) {
	return repo.ds18b20, nil
}

func (repo *fakeRepository) ListBME280(_ context.Context) ([]*record.Record, error) {
	return repo.bme280, nil
}

func newTestService() (*record.Service, *fakeRepository) {
	repo := &fakeRepository{}
	return record.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

// testOperator is the resolved session identity ingest calls run under.
var testOperator = &sec.Identity{
	UserID:   "0195f7a2-0000-7000-8000-00000000abcd",
	Username: "probe-operator",
}

// # Ingestion

/*
TestIngest_AssignsServerID verifies that ingestion mints its own identifier
and that distinct ingests never share one.
*/
func TestIngest_AssignsServerID(t *testing.T) {
	service, _ := newTestService()

	first, err := service.Ingest(context.Background(), testOperator, time.Now(), record.DS18B20{
		DeviceName: "probe-3",
		RawReading: 352,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := service.Ingest(context.Background(), testOperator, time.Now(), record.DS18B20{
		DeviceName: "probe-3",
		RawReading: 353,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

/*
TestIngest_RoutesByVariant verifies that each sensor model lands in its own
storage slot and never crosses into the other's.
*/
func TestIngest_RoutesByVariant(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Ingest(context.Background(), testOperator, time.Now(), record.DS18B20{
		DeviceName: "probe-3",
		RawReading: 352,
	})
	require.NoError(t, err)

	_, err = service.Ingest(context.Background(), testOperator, time.Now(), record.BME280{
		Temperature: 21.4,
		Pressure:    1009.8,
		Humidity:    43.1,
	})
	require.NoError(t, err)

	require.Len(t, repo.ds18b20, 1)
	require.Len(t, repo.bme280, 1)
	assert.IsType(t, record.DS18B20{}, repo.ds18b20[0].Reading)
	assert.IsType(t, record.BME280{}, repo.bme280[0].Reading)
}

/*
TestIngest_TimestampHandling verifies UTC normalization and the zero-value
default.
*/
func TestIngest_TimestampHandling(t *testing.T) {
	service, _ := newTestService()

	zone := time.FixedZone("UTC+7", 7*3600)
	taken := time.Date(2026, time.March, 14, 16, 26, 53, 0, zone)

	stored, err := service.Ingest(context.Background(), testOperator, taken, record.BME280{
		Temperature: 21.4, Pressure: 1009.8, Humidity: 43.1,
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, stored.Timestamp.Location())
	assert.True(t, stored.Timestamp.Equal(taken))

	before := time.Now()
	defaulted, err := service.Ingest(context.Background(), testOperator, time.Time{}, record.BME280{
		Temperature: 21.4, Pressure: 1009.8, Humidity: 43.1,
	})
	require.NoError(t, err)
	assert.False(t, defaulted.Timestamp.Before(before.Add(-time.Second)))
	assert.False(t, defaulted.Timestamp.After(time.Now().Add(time.Second)))
}

/*
TestIngest_PersistenceFailure verifies that storage failures pass through
untouched, preserving the persistence error contract.
*/
func TestIngest_PersistenceFailure(t *testing.T) {
	service, repo := newTestService()
	repo.commitErr = apperr.Persistence(errors.New("connection reset by peer"))

	stored, err := service.Ingest(context.Background(), testOperator, time.Now(), record.DS18B20{
		DeviceName: "probe-3",
		RawReading: 352,
	})

	require.Error(t, err)
	assert.Nil(t, stored)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "PERSISTENCE_ERROR", ae.Code)
	assert.Equal(t, "database error", ae.Message)
	assert.Equal(t, "connection reset by peer", ae.Description)
}

/*
TestCommitRecord_DuplicateID verifies the id uniqueness invariant: a commit
reusing an existing id fails with the persistence error and the original
row is left untouched.
*/
func TestCommitRecord_DuplicateID(t *testing.T) {
	service, repo := newTestService()

	first, err := service.Ingest(context.Background(), testOperator, time.Now(), record.DS18B20{
		DeviceName: "probe-3",
		RawReading: 352,
	})
	require.NoError(t, err)

	replay := &record.Record{
		ID:        first.ID,
		Timestamp: time.Now().UTC(),
		Reading:   record.DS18B20{DeviceName: "impostor", RawReading: -1},
	}
	_, err = repo.CommitRecord(context.Background(), replay)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "PERSISTENCE_ERROR", ae.Code)

	// The stored row must be the original, not the replay.
	require.Len(t, repo.ds18b20, 1)
	stored, ok := repo.ds18b20[0].Reading.(record.DS18B20)
	require.True(t, ok)
	assert.Equal(t, "probe-3", stored.DeviceName)
	assert.Equal(t, int32(352), stored.RawReading)
}

// # Retrieval

func TestList_ReturnsStoredRecords(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Ingest(context.Background(), testOperator, time.Now(), record.DS18B20{
		DeviceName: "probe-3",
		RawReading: 352,
	})
	require.NoError(t, err)

	thermometers, err := service.ListDS18B20(context.Background())
	require.NoError(t, err)
	require.Len(t, thermometers, 1)

	combined, err := service.ListBME280(context.Background())
	require.NoError(t, err)
	assert.Empty(t, combined)
}
