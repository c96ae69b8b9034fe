package movecall

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultModule = "anti_theft_gps_tracker"

const (
	FnCreateDevice     = "create_device"
	FnUpdateThreshold  = "update_threshold"
	FnRegisterGPSEvent = "register_gps_event"
)

var (
	ErrMissingPackage  = errors.New("package id is required")
	ErrMissingRegistry = errors.New("registry id is required")
	ErrEmptyObjectID   = errors.New("object id cannot be empty")
	ErrMalformedNumber = errors.New("malformed number")
	ErrNonFinite       = errors.New("coordinate must be a finite number")
)

// Contract addresses one deployed instance of the tracker module.
type Contract struct {
	PackageID  string
	Module     string
	RegistryID string
}

type Encoder struct {
	contract Contract
}

func NewEncoder(c Contract) (*Encoder, error) {
	const fn = "movecall:NewEncoder"
	c.PackageID = strings.TrimSpace(c.PackageID)
	c.RegistryID = strings.TrimSpace(c.RegistryID)
	if c.PackageID == "" {
		return nil, fmt.Errorf("%s:%w", fn, ErrMissingPackage)
	}
	if c.RegistryID == "" {
		return nil, fmt.Errorf("%s:%w", fn, ErrMissingRegistry)
	}
	if c.Module == "" {
		c.Module = DefaultModule
	}
	return &Encoder{contract: c}, nil
}

func (e *Encoder) Contract() Contract {
	return e.contract
}

func (e *Encoder) target(function string) Target {
	return Target{
		Package:  e.contract.PackageID,
		Module:   e.contract.Module,
		Function: function,
	}
}

// CreateDevice registers a new device under the shared registry.
func (e *Encoder) CreateDevice(name string, threshold uint64) (Descriptor, error) {
	return Descriptor{
		Target: e.target(FnCreateDevice),
		Arguments: []Argument{
			PureArg(name, TypeString),
			PureArg(threshold, TypeU64),
			ObjectArg(e.contract.RegistryID),
		},
	}, nil
}

func (e *Encoder) UpdateThreshold(deviceID string, threshold uint64) (Descriptor, error) {
	const fn = "movecall:UpdateThreshold"
	device, err := objectID(deviceID)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s:%w", fn, err)
	}
	return Descriptor{
		Target: e.target(FnUpdateThreshold),
		Arguments: []Argument{
			ObjectArg(device),
			PureArg(threshold, TypeU64),
		},
	}, nil
}

func (e *Encoder) RegisterGPSEvent(deviceID string, lat, lng float64) (Descriptor, error) {
	const fn = "movecall:RegisterGPSEvent"
	device, err := objectID(deviceID)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s:%w", fn, err)
	}
	if !finite(lat) || !finite(lng) {
		return Descriptor{}, fmt.Errorf("%s:%w", fn, ErrNonFinite)
	}
	return Descriptor{
		Target: e.target(FnRegisterGPSEvent),
		Arguments: []Argument{
			ObjectArg(device),
			PureArg(lat, TypeF64),
			PureArg(lng, TypeF64),
		},
	}, nil
}

// ParseU64 reads a u64 from text field input. Range rules beyond what a u64
// can hold are left to the on-chain module.
func ParseU64(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned 64-bit integer", ErrMalformedNumber, s)
	}
	return v, nil
}

func ParseF64(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finite(v) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedNumber, s)
	}
	return v, nil
}

func objectID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyObjectID
	}
	return id, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
