// Copyright (c) 2026 Rerec. All rights reserved.

// PostgreSQL implementation of the record repository.
//
// # Layout
//
// Each sensor model owns its own table under the records schema, shaped to
// the model's fields. The routing decision is an exhaustive type switch over
// the closed variant set.
//
// # Error Mapping
//
// Every storage failure surfaces as [apperr.Persistence]: the ingestion
// contract exposes the storage failure text, so nothing is reshaped into a
// friendlier domain error here.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ladekjaer/rerec/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
CommitRecord persists a single record atomically.

Description: One INSERT into the table for the record's sensor model. The
primary key on id makes a duplicate identifier fail loudly instead of
overwriting an earlier measurement.

Parameters:
  - context: context.Context
  - record: *Record

Returns:
  - string: Identifier of the persisted row
  - error: apperr.Persistence wrapping the storage failure
*/
func (repository *PostgresRepository) CommitRecord(context context.Context, record *Record) (string, error) {
	timestamp := record.Timestamp.UTC()

	var err error
	switch reading := record.Reading.(type) {
	case DS18B20:
		const query = `
			INSERT INTO records.ds18b20 (id, device_name, raw_reading, timestamp)
			VALUES ($1, $2, $3, $4)`
		_, err = repository.pool.Exec(context, query,
			record.ID, reading.DeviceName, reading.RawReading, timestamp)

	case BME280:
		const query = `
			INSERT INTO records.bme280 (id, temperature, pressure, humidity, timestamp)
			VALUES ($1, $2, $3, $4, $5)`
		_, err = repository.pool.Exec(context, query,
			record.ID, reading.Temperature, reading.Pressure, reading.Humidity, timestamp)

	default:
		// Unreachable through the wire codec; guards hand-built records only.
		return "", apperr.Persistence(fmt.Errorf("unsupported sensor model %T", record.Reading))
	}

	if err != nil {
		return "", apperr.Persistence(err)
	}

	return record.ID, nil
}

/*
ListDS18B20 returns every stored digital thermometer record.

Parameters:
  - context: context.Context

Returns:
  - []*Record: Oldest measurement first
  - error: apperr.Persistence wrapping the storage failure
*/
func (repository *PostgresRepository) ListDS18B20(context context.Context) ([]*Record, error) {
	const query = `
		SELECT id, device_name, raw_reading, timestamp
		FROM records.ds18b20
		ORDER BY timestamp ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			id        string
			reading   DS18B20
			timestamp time.Time
		)
		if err := rows.Scan(&id, &reading.DeviceName, &reading.RawReading, &timestamp); err != nil {
			return nil, apperr.Persistence(err)
		}
		records = append(records, &Record{ID: id, Timestamp: timestamp.UTC(), Reading: reading})
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err)
	}

	return records, nil
}

/*
ListBME280 returns every stored environmental sensor record.

Parameters:
  - context: context.Context

Returns:
  - []*Record: Oldest measurement first
  - error: apperr.Persistence wrapping the storage failure
*/
func (repository *PostgresRepository) ListBME280(context context.Context) ([]*Record, error) {
	const query = `
		SELECT id, temperature, pressure, humidity, timestamp
		FROM records.bme280
		ORDER BY timestamp ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			id        string
			reading   BME280
			timestamp time.Time
		)
		if err := rows.Scan(&id, &reading.Temperature, &reading.Pressure, &reading.Humidity, &timestamp); err != nil {
			return nil, apperr.Persistence(err)
		}
		records = append(records, &Record{ID: id, Timestamp: timestamp.UTC(), Reading: reading})
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err)
	}

	return records, nil
}
