package services

import (
	"time"

	"github.com/Vandammecasper/voting-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureService struct {
	db *gorm.DB
}

func NewFeatureService(db *gorm.DB) *FeatureService {
	return &FeatureService{db: db}
}

// FeatureWithLikes is the wire value at featureRequests/{id}: the request
// fields plus the set of user ids that liked it.
type FeatureWithLikes struct {
	models.FeatureRequest
	Likes map[string]bool `json:"likes,omitempty"`
}

func (s *FeatureService) withLikes(fr models.FeatureRequest) FeatureWithLikes {
	var likes []models.FeatureLike
	s.db.Where("request_id = ?", fr.ID).Find(&likes)

	out := FeatureWithLikes{FeatureRequest: fr}
	if len(likes) > 0 {
		out.Likes = make(map[string]bool, len(likes))
		for _, l := range likes {
			out.Likes[l.UserID] = true
		}
	}
	return out
}

func (s *FeatureService) List() (map[string]FeatureWithLikes, error) {
	var requests []models.FeatureRequest
	if err := s.db.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}

	out := make(map[string]FeatureWithLikes, len(requests))
	for _, fr := range requests {
		out[fr.ID] = s.withLikes(fr)
	}
	return out, nil
}

func (s *FeatureService) Get(requestID string) (*FeatureWithLikes, error) {
	var fr models.FeatureRequest
	if err := s.db.Where("id = ?", requestID).First(&fr).Error; err != nil {
		return nil, ErrNotFound
	}
	full := s.withLikes(fr)
	return &full, nil
}

func (s *FeatureService) Create(callerID string, fr models.FeatureRequest) (*models.FeatureRequest, error) {
	if fr.Title == "" {
		return nil, ErrInvalid
	}
	fr.ID = uuid.NewString()
	if fr.UserID == "" {
		fr.UserID = callerID
	}
	if fr.CreatedAt.IsZero() {
		fr.CreatedAt = time.Now()
	}
	if err := s.db.Create(&fr).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}

func (s *FeatureService) Patch(callerID, requestID string, fields map[string]interface{}) (*models.FeatureRequest, error) {
	var fr models.FeatureRequest
	if err := s.db.Where("id = ?", requestID).First(&fr).Error; err != nil {
		return nil, ErrNotFound
	}
	if fr.UserID != callerID {
		return nil, ErrForbidden
	}

	for key, val := range fields {
		str, ok := val.(string)
		if !ok {
			return nil, ErrInvalid
		}
		switch key {
		case "title":
			if str == "" {
				return nil, ErrInvalid
			}
			fr.Title = str
		case "description":
			fr.Description = str
		default:
			return nil, ErrInvalid
		}
	}

	if err := s.db.Save(&fr).Error; err != nil {
		return nil, err
	}
	return &fr, nil
}

func (s *FeatureService) Delete(callerID, requestID string) error {
	var fr models.FeatureRequest
	if err := s.db.Where("id = ?", requestID).First(&fr).Error; err != nil {
		return ErrNotFound
	}
	if fr.UserID != callerID {
		return ErrForbidden
	}
	s.db.Delete(&models.FeatureLike{}, "request_id = ?", requestID)
	return s.db.Delete(&models.FeatureRequest{}, "id = ?", requestID).Error
}

// Like records callerID's like on a request; liking twice is a no-op.
func (s *FeatureService) Like(callerID, requestID, userID string) error {
	if callerID != userID {
		return ErrForbidden
	}
	var count int64
	s.db.Model(&models.FeatureRequest{}).Where("id = ?", requestID).Count(&count)
	if count == 0 {
		return ErrNotFound
	}

	var existing int64
	s.db.Model(&models.FeatureLike{}).
		Where("request_id = ? AND user_id = ?", requestID, userID).
		Count(&existing)
	if existing > 0 {
		return nil
	}
	return s.db.Create(&models.FeatureLike{RequestID: requestID, UserID: userID}).Error
}

func (s *FeatureService) Unlike(callerID, requestID, userID string) error {
	if callerID != userID {
		return ErrForbidden
	}
	return s.db.Delete(&models.FeatureLike{}, "request_id = ? AND user_id = ?", requestID, userID).Error
}
