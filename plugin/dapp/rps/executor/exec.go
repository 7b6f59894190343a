// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import "github.com/33cn/rps/types"

// Exec_StartPlay 提交承诺
func (r *Rps) Exec_StartPlay(tx *types.Transaction, index int) (*types.Receipt, error) {
	action, err := r.decodeAction(tx)
	if err != nil {
		return nil, err
	}
	if action.StartPlay == nil {
		return nil, types.ErrInvalidParam
	}
	return NewAction(r, tx).StartPlay(action.StartPlay)
}

// Exec_Answer 揭示
func (r *Rps) Exec_Answer(tx *types.Transaction, index int) (*types.Receipt, error) {
	action, err := r.decodeAction(tx)
	if err != nil {
		return nil, err
	}
	if action.Answer == nil {
		return nil, types.ErrInvalidParam
	}
	return NewAction(r, tx).Answer(action.Answer)
}
