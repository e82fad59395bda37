// Package model defines the shared contact form types: the four field names in
// their display order, the enumerated interest tags, the per-field visual
// state, toast severities and the persisted Draft record.
package model
