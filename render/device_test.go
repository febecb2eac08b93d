// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestNullDeviceHandle(t *testing.T) {
	var h DeviceHandle = NullDeviceHandle{}
	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("null device exposed a live handle")
	}
	if got := h.AdapterInfo().Type; got != gpucontext.AdapterTypeUnknown {
		t.Errorf("AdapterInfo().Type = %v, want Unknown", got)
	}
}

type fakeAdapterDevice struct {
	NullDeviceHandle
	kind gpucontext.AdapterType
}

func (d fakeAdapterDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: d.kind}
}

func TestCapabilitiesForDevice(t *testing.T) {
	tests := []struct {
		name        string
		handle      DeviceHandle
		wantEffects bool
	}{
		{"nil handle", nil, true},
		{"null device", NullDeviceHandle{}, true},
		{"discrete adapter", fakeAdapterDevice{kind: gpucontext.AdapterTypeDiscrete}, true},
		{"software adapter", fakeAdapterDevice{kind: gpucontext.AdapterTypeSoftware}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := CapabilitiesForDevice(tt.handle)
			if caps.SupportsCoverageEffects != tt.wantEffects {
				t.Errorf("SupportsCoverageEffects = %v, want %v",
					caps.SupportsCoverageEffects, tt.wantEffects)
			}
			if caps.MaxTextureSize != DefaultCapabilities().MaxTextureSize {
				t.Errorf("MaxTextureSize = %d, want the default", caps.MaxTextureSize)
			}
		})
	}
}
