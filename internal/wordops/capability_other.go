// Copyright 2021 The bit Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package wordops

func probe() Capability {
	return Capability{}
}
