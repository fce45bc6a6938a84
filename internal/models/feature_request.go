package models

import "time"

// FeatureRequest is an independent sub-feature: plain CRUD plus a
// per-user like toggle at featureRequests/{id}/likes/{userId}.
type FeatureRequest struct {
	ID          string    `gorm:"primaryKey;size:36" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	UserID      string    `gorm:"size:36;index" json:"userId,omitempty"`
	UserName    string    `gorm:"size:100" json:"userName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FeatureLike struct {
	RequestID string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"primaryKey;size:36"`
}
