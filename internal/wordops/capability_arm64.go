// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build arm64

package wordops

import "golang.org/x/sys/cpu"

// CLZ/RBIT are baseline on arm64; popcount goes through the ASIMD CNT instruction.
func probe() Capability {
	return Capability{
		Popcount: cpu.ARM64.HasASIMD,
		BitScan:  true,
	}
}
