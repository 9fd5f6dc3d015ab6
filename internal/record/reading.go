// Copyright (c) 2026 Rerec. All rights reserved.

/*
Package record implements sensor reading ingestion and retrieval.

# Domain Model

A [Reading] is one measurement taken by a physical sensor. The set of sensor
models is closed: every reading is either a [DS18B20] (a one-wire digital
thermometer reporting a raw integer register value) or a [BME280] (a combined
environmental sensor reporting temperature, pressure, and humidity). The
closed set is enforced in the type system with an unexported marker method,
so no package outside this one can introduce a new variant.

# Wire Format

Readings travel as externally tagged JSON: a single-key object whose key
names the sensor model and whose value carries the model's fields.

	{"DS18B20": {"device_name": "probe-3", "raw_reading": 352}}
	{"BME280": {"temperature": 21.4, "pressure": 1009.8, "humidity": 43.1}}

Decoding trusts the tag alone. An object with zero keys, more than one key,
or an unrecognized key is rejected outright.
*/
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// # Sensor Model Tags

const (
	// TagDS18B20 is the wire tag for the digital thermometer variant.
	TagDS18B20 = "DS18B20"

	// TagBME280 is the wire tag for the combined environmental sensor variant.
	TagBME280 = "BME280"
)

// # Reading Variants

// Reading is one measurement from a supported sensor model.
//
// The interface is closed: only [DS18B20] and [BME280] satisfy it.
type Reading interface {
	// SensorModel returns the wire tag identifying the variant.
	SensorModel() string

	isReading()
}

// DS18B20 is a measurement from a one-wire digital thermometer.
//
// RawReading is the sensor's register value as reported on the bus; scaling
// to a physical unit is left to consumers of the stored data.
type DS18B20 struct {
	DeviceName string `json:"device_name"`
	RawReading int32  `json:"raw_reading"`
}

// SensorModel implements [Reading].
func (DS18B20) SensorModel() string { return TagDS18B20 }

func (DS18B20) isReading() {}

// BME280 is a measurement from a combined environmental sensor.
type BME280 struct {
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
}

// SensorModel implements [Reading].
func (BME280) SensorModel() string { return TagBME280 }

func (BME280) isReading() {}

// # Wire Codec

/*
MarshalReading encodes a reading in the externally tagged wire format.

Parameters:
  - reading: Reading (Variant to encode; must be non-nil)

Returns:
  - []byte: Single-key JSON object keyed by the sensor model tag
  - error: Encoding failure, or a nil reading
*/
func MarshalReading(reading Reading) ([]byte, error) {
	if reading == nil {
		return nil, fmt.Errorf("cannot encode nil reading")
	}
	return json.Marshal(map[string]Reading{reading.SensorModel(): reading})
}

/*
UnmarshalReading decodes a reading from the externally tagged wire format.

Description: The envelope must contain exactly one key, and that key must
name a known sensor model. Anything else (empty object, several tags at
once, a tag this system has never heard of, a non-object value) is an error;
no fallback decoding is attempted.

Parameters:
  - data: []byte (Raw JSON envelope)

Returns:
  - Reading: The decoded variant
  - error: Malformed envelope or unknown sensor model
*/
func UnmarshalReading(data []byte) (Reading, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("reading is not a JSON object: %w", err)
	}

	if len(envelope) == 0 {
		return nil, fmt.Errorf("reading carries no sensor model tag")
	}
	if len(envelope) > 1 {
		return nil, fmt.Errorf("reading carries %d sensor model tags, expected exactly one", len(envelope))
	}

	for tag, payload := range envelope {
		// A null payload would unmarshal as an all-zero reading.
		if string(bytes.TrimSpace(payload)) == "null" {
			return nil, fmt.Errorf("sensor model %q has no payload", tag)
		}

		switch tag {
		case TagDS18B20:
			var reading DS18B20
			if err := json.Unmarshal(payload, &reading); err != nil {
				return nil, fmt.Errorf("malformed %s payload: %w", TagDS18B20, err)
			}
			return reading, nil

		case TagBME280:
			var reading BME280
			if err := json.Unmarshal(payload, &reading); err != nil {
				return nil, fmt.Errorf("malformed %s payload: %w", TagBME280, err)
			}
			return reading, nil

		default:
			return nil, fmt.Errorf("unknown sensor model %q", tag)
		}
	}

	// Unreachable: the envelope holds exactly one entry.
	return nil, fmt.Errorf("reading carries no sensor model tag")
}
