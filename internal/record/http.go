// Copyright (c) 2026 Rerec. All rights reserved.

/*
HTTP delivery layer for measurement records.

Every endpoint in this package sits behind the authentication gate: a caller
with no resolved session identity never reaches the service layer.

The ingestion reply is wire-compatible with the device firmware already in
the field, so it bypasses the platform success envelope.
*/
package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ladekjaer/rerec/internal/platform/constants"
	"github.com/ladekjaer/rerec/internal/platform/middleware"
	requestutil "github.com/ladekjaer/rerec/internal/platform/request"
	"github.com/ladekjaer/rerec/internal/platform/respond"
	"github.com/ladekjaer/rerec/internal/platform/validate"
)

// # Definitions & Constructors

const (
	fieldDeviceName = "device_name"

	maxDeviceNameLength = 64
)

// Handler implements record-related HTTP endpoints.
type Handler struct {
	recordService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{recordService: service}
}

// Routes returns a [chi.Router] configured with record-specific routes.
//
// # Endpoints
//   - POST /        : Ingests one measurement.
//   - GET  /ds18b20 : Lists all digital thermometer records.
//   - GET  /bme280  : Lists all environmental sensor records.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.ingest)
	router.Get("/ds18b20", handler.listDS18B20)
	router.Get("/bme280", handler.listBME280)

	return router
}

/*
Ingest stores one measurement.

POST /api/v1/records

Description: Decodes the externally tagged reading envelope, stamps the
record with a server-assigned identifier, and commits it to the table for
its sensor model.

Request:
  - Body: {timestamp, reading} where reading is the tagged variant envelope

Response:
  - 201: {"message": "record saved successfully", "record_id": "<uuid>"}
  - 400: ErrInvalidJSON or validation details: malformed body, a reading
    with a bad tag set, or a thermometer device name outside the
    provisioning format
  - 401: ErrUnauthorized: No resolved session
  - 500: Persistence failure, description carries the storage error text
*/
func (handler *Handler) ingest(writer http.ResponseWriter, request *http.Request) {
	operator, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A client-supplied id is accepted syntactically and ignored.
	var input Record

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Thermometer device names follow the fleet provisioning format.
	if thermometer, ok := input.Reading.(DS18B20); ok {
		validator := &validate.Validator{}
		validator.Required(fieldDeviceName, thermometer.DeviceName).
			MaxLen(fieldDeviceName, thermometer.DeviceName, maxDeviceNameLength).
			Slug(fieldDeviceName, thermometer.DeviceName)

		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	stored, err := handler.recordService.Ingest(request.Context(), operator, input.Timestamp, input.Reading)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, map[string]string{
		constants.FieldMessage:  "record saved successfully",
		constants.FieldRecordID: stored.ID,
	})
}

/*
ListDS18B20 returns all stored digital thermometer records.

GET /api/v1/records/ds18b20

Response:
  - 200: Records, oldest measurement first
  - 401: ErrUnauthorized: No resolved session
  - 500: Persistence failure
*/
func (handler *Handler) listDS18B20(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.recordService.ListDS18B20(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, normalize(records))
}

/*
ListBME280 returns all stored environmental sensor records.

GET /api/v1/records/bme280

Response:
  - 200: Records, oldest measurement first
  - 401: ErrUnauthorized: No resolved session
  - 500: Persistence failure
*/
func (handler *Handler) listBME280(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.recordService.ListBME280(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, normalize(records))
}

// normalize guarantees an empty JSON array, never null, for empty result sets.
func normalize(records []*Record) []*Record {
	if records == nil {
		return []*Record{}
	}
	return records
}
