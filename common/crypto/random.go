// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	crand "crypto/rand"
	"io"
)

// CRandBytes 获取随机bytes
func CRandBytes(numBytes int) []byte {
	b := make([]byte, numBytes)
	_, err := io.ReadFull(crand.Reader, b)
	if err != nil {
		panic(err)
	}
	return b
}
