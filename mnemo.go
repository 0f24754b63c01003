// mnemo.go: library version and default constants
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import "time"

const (
	// Version of the Mnemo cache library
	Version = "v0.1.0-dev"

	// DefaultAgeMax is the default store-wide TTL for cached records.
	DefaultAgeMax = 10 * time.Minute
)
