// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()

// 执行和查询方法的前缀
const (
	ExecPrefix  = "Exec_"
	QueryPrefix = "Query_"
)

// Is this an exported - upper case - name?
func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// ListMethod 列出执行器中 Exec_ 和 Query_ 开头的导出方法
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		mname := method.Name
		// Method must be exported.
		if method.PkgPath != "" || !isExported(mname) {
			continue
		}
		if strings.HasPrefix(mname, ExecPrefix) || strings.HasPrefix(mname, QueryPrefix) {
			methods[mname] = method
		}
	}
	return methods
}

// isOK 检查返回值个数以及最后一个返回值是 error
func isOK(list []reflect.Value, n int) bool {
	if len(list) != n {
		return false
	}
	return list[n-1].Type() == typeOfError || list[n-1].Type().Implements(typeOfError)
}

func callError(v reflect.Value) error {
	r := v.Interface()
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}
