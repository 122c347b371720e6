package models

import (
	"time"
)

// ===== STORE RESULTS =====

// WriteResult reports the effect of a single insert, update or delete.
// A zero-count result for an unknown id is a success, not an error.
type WriteResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	InsertedID    string `json:"insertedId,omitempty"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	DeletedCount  int64  `json:"deletedCount"`
}

func InsertResult(id string) *WriteResult {
	return &WriteResult{Acknowledged: true, InsertedID: id}
}

func UpdateResult(matched, modified int64) *WriteResult {
	return &WriteResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}
}

func DeleteResult(deleted int64) *WriteResult {
	return &WriteResult{Acknowledged: true, DeletedCount: deleted}
}

// ===== ROLE QUERIES =====

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type InstructorCheckResponse struct {
	Instructor bool `json:"instructor"`
}

// ===== CHECKOUT =====

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error     bool        `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
