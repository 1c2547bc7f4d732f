// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build amd64

package wordops

import "golang.org/x/sys/cpu"

// BSF/BSR are baseline on amd64; POPCNT is not.
func probe() Capability {
	return Capability{
		Popcount: cpu.X86.HasPOPCNT,
		BitScan:  true,
	}
}
