package models

import (
	"encoding/json"
	"fmt"
)

// RawBasisPoint is one day's ground-truth spot minus futures settle.
type RawBasisPoint struct {
	Date          string  `json:"date"`
	Value         float64 `json:"value"`
	GroundTruth   float64 `json:"eia"`
	FuturesSettle float64 `json:"futures"`
}

// SmoothingMethod tags how a SmoothedBasis value was produced.
type SmoothingMethod string

const (
	MethodNone          SmoothingMethod = "none"
	MethodMeanColdStart SmoothingMethod = "mean_cold_start"
)

// MethodEWMA returns the method tag for a half-life EWMA, e.g. "ewma_half_life_3bd".
func MethodEWMA(halfLifeDays float64) SmoothingMethod {
	return SmoothingMethod(fmt.Sprintf("ewma_half_life_%gbd", halfLifeDays))
}

// SmoothedBasis is the per-instrument basis scalar. Value is nil only for an empty window.
type SmoothedBasis struct {
	Value  *float64        `json:"value"`
	Method SmoothingMethod `json:"method"`
}

// ResolutionStatus names a Resolution variant.
type ResolutionStatus string

const (
	ResolutionExact        ResolutionStatus = "exact"
	ResolutionPending      ResolutionStatus = "pending"
	ResolutionInterpolated ResolutionStatus = "interpolated"
	ResolutionUnavailable  ResolutionStatus = "unavailable"
)

// Resolution is the ground-truth spread classification for the target date.
// The concrete types are ExactResolution, PendingResolution,
// InterpolatedResolution and UnavailableResolution.
type Resolution interface {
	Status() ResolutionStatus
	isResolution()
}

// ExactResolution: both legs were published for the target date.
type ExactResolution struct {
	TargetDate string  `json:"target_date"`
	WTI        float64 `json:"wti"`
	Brent      float64 `json:"brent"`
	Value      float64 `json:"value"`
}

// PendingResolution: target date not yet published and the deadline has not passed.
type PendingResolution struct {
	TargetDate string `json:"target_date"`
	Deadline   string `json:"interpolation_deadline"`
	Message    string `json:"message"`
}

// InterpolatedResolution: both legs linearly interpolated between bracketing dates.
type InterpolatedResolution struct {
	TargetDate string  `json:"target_date"`
	Deadline   string  `json:"interpolation_deadline"`
	PrevDate   string  `json:"prev_date"`
	NextDate   string  `json:"next_date"`
	T          float64 `json:"t"`
	WTI        float64 `json:"wti"`
	Brent      float64 `json:"brent"`
	Value      float64 `json:"value"`
}

// UnavailableResolution: deadline passed without a bracket on both sides.
type UnavailableResolution struct {
	TargetDate string `json:"target_date"`
	Deadline   string `json:"interpolation_deadline"`
	Reason     string `json:"reason"`
}

func (ExactResolution) Status() ResolutionStatus        { return ResolutionExact }
func (PendingResolution) Status() ResolutionStatus      { return ResolutionPending }
func (InterpolatedResolution) Status() ResolutionStatus { return ResolutionInterpolated }
func (UnavailableResolution) Status() ResolutionStatus  { return ResolutionUnavailable }

func (ExactResolution) isResolution()        {}
func (PendingResolution) isResolution()      {}
func (InterpolatedResolution) isResolution() {}
func (UnavailableResolution) isResolution()  {}

// MarshalJSON adds the "status" discriminator.
func (r ExactResolution) MarshalJSON() ([]byte, error) {
	type alias ExactResolution
	return marshalTagged(r.Status(), alias(r))
}

// MarshalJSON adds the "status" discriminator.
func (r PendingResolution) MarshalJSON() ([]byte, error) {
	type alias PendingResolution
	return marshalTagged(r.Status(), alias(r))
}

// MarshalJSON adds the "status" discriminator.
func (r InterpolatedResolution) MarshalJSON() ([]byte, error) {
	type alias InterpolatedResolution
	return marshalTagged(r.Status(), alias(r))
}

// MarshalJSON adds the "status" discriminator.
func (r UnavailableResolution) MarshalJSON() ([]byte, error) {
	type alias UnavailableResolution
	return marshalTagged(r.Status(), alias(r))
}

func marshalTagged(status ResolutionStatus, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	tag, _ := json.Marshal(status)
	fields["status"] = tag
	return json.Marshal(fields)
}

// CalibratedPoint is a futures price re-based by the smoothed basis at one instant.
type CalibratedPoint struct {
	Timestamp string  `json:"timestamp"`
	WTI       float64 `json:"wti"`
	Brent     float64 `json:"brent"`
	Spread    float64 `json:"spread"`
}
