package services

import (
	"time"

	"github.com/Vandammecasper/voting-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryService guards userHistory/{userId}: every key under it is
// private to that user.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

func (s *HistoryService) List(callerID, userID string) ([]models.HistoryEntry, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	var entries []models.HistoryEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *HistoryService) Get(callerID, userID, lobbyID string) (*models.HistoryEntry, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	var entry models.HistoryEntry
	if err := s.db.Where("user_id = ? AND lobby_id = ?", userID, lobbyID).
		First(&entry).Error; err != nil {
		return nil, ErrNotFound
	}
	return &entry, nil
}

func (s *HistoryService) Put(callerID, userID, lobbyID string, entry models.HistoryEntry) (*models.HistoryEntry, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	entry.UserID = userID
	entry.LobbyID = lobbyID
	if entry.JoinedAt.IsZero() {
		entry.JoinedAt = time.Now()
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *HistoryService) Delete(callerID, userID, lobbyID string) error {
	if callerID != userID {
		return ErrForbidden
	}
	return s.db.Delete(&models.HistoryEntry{}, "user_id = ? AND lobby_id = ?", userID, lobbyID).Error
}
