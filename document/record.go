// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package document

import (
	"time"
)

// Record - a generic document of JSON fields
type Record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
	Status Verification           `json:"verification"`
}

// NewRecord - a record with the given fields
func NewRecord(id string, fields map[string]interface{}) *Record {
	if nil == fields {
		fields = make(map[string]interface{})
	}
	return &Record{
		ID:     id,
		Fields: fields,
	}
}

// Id - record identifier
func (r *Record) Id() string {
	return r.ID
}

// Canonicalise - canonical form of the fields only
func (r *Record) Canonicalise() (string, error) {
	return Canonical(r.Fields)
}

// Verification - the verification status
func (r *Record) Verification() *Verification {
	return &r.Status
}

// TodoItem - a typed document
//
// UpdatedAt and the verification status change without the item
// changing so they are not part of the canonical form
type TodoItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Completed   bool         `json:"completed"`
	Priority    string       `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Owner       string       `json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Status      Verification `json:"verification"`
}

// the fields that make up a todo item's identity
type todoContent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Owner       string     `json:"owner"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Id - item identifier
func (item *TodoItem) Id() string {
	return item.ID
}

// Canonicalise - canonical form of the content fields
func (item *TodoItem) Canonicalise() (string, error) {
	var due *time.Time
	if nil != item.DueDate {
		d := item.DueDate.UTC()
		due = &d
	}
	return Canonical(&todoContent{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Completed:   item.Completed,
		Priority:    item.Priority,
		DueDate:     due,
		Owner:       item.Owner,
		CreatedAt:   item.CreatedAt.UTC(),
	})
}

// Verification - the verification status
func (item *TodoItem) Verification() *Verification {
	return &item.Status
}
