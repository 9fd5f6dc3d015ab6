// Copyright (c) 2026 Rerec. All rights reserved.

// Business logic for measurement ingestion and retrieval.
package record

import (
	"context"
	"log/slog"
	"time"

	"github.com/ladekjaer/rerec/internal/platform/sec"
	"github.com/ladekjaer/rerec/pkg/uuid"
)

// # Definitions & Constructors

// Service implements the ingestion workflow on top of a [Repository].
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Ingestion

/*
Ingest persists a new measurement and returns the stored record.

Description: The service owns record identity: it assigns a fresh
time-ordered identifier to every measurement, regardless of anything the
caller sent. A zero timestamp defaults to the moment of ingestion; all
timestamps are normalized to UTC. The operator is the session identity the
auth gate resolved for this request, carried through for the audit log.

Parameters:
  - context: context.Context
  - operator: *sec.Identity (Resolved session identity of the caller)
  - timestamp: time.Time (Measurement time; zero means "now")
  - reading: Reading (Variant to persist)

Returns:
  - *Record: The persisted record, including its assigned id
  - error: apperr.Persistence on storage failure
*/
func (service *Service) Ingest(context context.Context, operator *sec.Identity, timestamp time.Time, reading Reading) (*Record, error) {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	stored := &Record{
		ID:        uuid.New(),
		Timestamp: timestamp.UTC(),
		Reading:   reading,
	}

	recordID, err := service.repository.CommitRecord(context, stored)
	if err != nil {
		return nil, err
	}

	operatorID := ""
	if operator != nil {
		operatorID = operator.UserID
	}

	service.logger.InfoContext(context, "record_ingested",
		slog.String("record_id", recordID),
		slog.String("sensor_model", reading.SensorModel()),
		slog.String("user_id", operatorID),
	)

	return stored, nil
}

// # Retrieval

// ListDS18B20 returns every stored digital thermometer record, oldest first.
func (service *Service) ListDS18B20(context context.Context) ([]*Record, error) {
	return service.repository.ListDS18B20(context)
}

// ListBME280 returns every stored environmental sensor record, oldest first.
func (service *Service) ListBME280(context context.Context) ([]*Record, error) {
	return service.repository.ListBME280(context)
}
