// Package models defines the AMaaS domain entities and their snake_case wire
// projection. Marshalling any model with encoding/json produces the record the
// AMaaS API expects; the parsers in the parties, positions and transactions
// packages are the inverse.
package models

import "time"

// Entity contains the audit fields shared by every AMaaS record.
type Entity struct {
	CreatedBy   string     `json:"created_by"`
	UpdatedBy   string     `json:"updated_by"`
	CreatedTime *time.Time `json:"created_time"`
	UpdatedTime *time.Time `json:"updated_time"`
	Version     int        `json:"version"`
}

// Touch records a write by user at now. The first write stamps the creation
// fields; every later write stamps the update fields and bumps the version.
func (e *Entity) Touch(user string, now time.Time) {
	now = now.UTC()
	if e.CreatedTime == nil {
		e.CreatedBy = user
		e.CreatedTime = &now
		e.Version = 1
		return
	}
	e.UpdatedBy = user
	e.UpdatedTime = &now
	e.Version++
}
