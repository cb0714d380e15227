// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package document

import (
	"bytes"
	"encoding/json"

	"golang.org/x/text/unicode/norm"
)

// Canonical - compact JSON with sorted keys and NFC normalised strings
//
// v is first marshalled with encoding/json so struct tags apply;
// numbers keep their original text
func Canonical(v interface{}) (string, error) {
	buffer, err := json.Marshal(v)
	if nil != err {
		return "", err
	}

	decoder := json.NewDecoder(bytes.NewReader(buffer))
	decoder.UseNumber()
	var tree interface{}
	if err := decoder.Decode(&tree); nil != err {
		return "", err
	}

	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(normalise(tree)); nil != err {
		return "", err
	}
	return string(bytes.TrimRight(out.Bytes(), "\n")), nil
}

// NFC every string, keys included; maps are sorted on encode
func normalise(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return norm.NFC.String(t)
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[norm.NFC.String(k)] = normalise(e)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(t))
		for i, e := range t {
			a[i] = normalise(e)
		}
		return a
	default:
		return v
	}
}
