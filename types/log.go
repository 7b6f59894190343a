// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import log15 "github.com/inconshreveable/log15"

// types 不能依赖 common/log, 直接使用 log15
var tlog = log15.New("module", "types")
