// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host owns the device and queue; clip mask building only borrows
// them for mask texture and stencil work. A nil-device handle (see
// NullDeviceHandle) selects the CPU paths throughout.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so that host
// applications already wired to the gpucontext ecosystem plug in
// without adapters.
type DeviceHandle = gpucontext.DeviceProvider

// DeviceCapabilities describes the device limits that influence clip
// strategy selection.
type DeviceCapabilities struct {
	// MaxTextureSize is the maximum texture dimension supported.
	MaxTextureSize int

	// StencilBits is the number of stencil bits per pixel available
	// on render targets, 0 when no stencil attachment exists.
	StencilBits int

	// SupportsCoverageEffects indicates whether per-fragment coverage
	// processors can be attached to draws.
	SupportsCoverageEffects bool
}

// DefaultCapabilities returns capabilities matching the WebGPU
// baseline: 8192 textures, 8 stencil bits, coverage effects on.
func DefaultCapabilities() DeviceCapabilities {
	return DeviceCapabilities{
		MaxTextureSize:          8192,
		StencilBits:             8,
		SupportsCoverageEffects: true,
	}
}

// NullDeviceHandle is a DeviceHandle with no GPU behind it, used for
// CPU-only mask building and in tests.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}

// CapabilitiesForDevice derives strategy-relevant capabilities from the
// host's device handle. Software adapters evaluate per-fragment
// coverage processors slower than a one-time mask build, so coverage
// effects are switched off for them.
func CapabilitiesForDevice(h DeviceHandle) DeviceCapabilities {
	caps := DefaultCapabilities()
	if h == nil {
		return caps
	}
	if h.AdapterInfo().Type == gpucontext.AdapterTypeSoftware {
		caps.SupportsCoverageEffects = false
	}
	return caps
}
