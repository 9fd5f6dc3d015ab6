// Copyright (c) 2026 Rerec. All rights reserved.

package record

import "context"

// # Repository Contract

// Repository persists measurement records, one table per sensor model.
type Repository interface {
	/*
		CommitRecord persists a single record atomically.

		Description: Routes the record to the storage slot for its sensor
		model. The write either lands completely or not at all; there is
		no partial state and no retry.

		Parameters:
		  - context: context.Context
		  - record: *Record (ID, timestamp, and reading all populated)

		Returns:
		  - string: Identifier of the persisted row
		  - error: apperr.Persistence on any storage failure
	*/
	CommitRecord(context context.Context, record *Record) (string, error)

	/*
		ListDS18B20 returns every stored digital thermometer record.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Record: Records in insertion-timestamp order
		  - error: apperr.Persistence on any storage failure
	*/
	ListDS18B20(context context.Context) ([]*Record, error)

	/*
		ListBME280 returns every stored environmental sensor record.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Record: Records in insertion-timestamp order
		  - error: apperr.Persistence on any storage failure
	*/
	ListBME280(context context.Context) ([]*Record, error)
}
