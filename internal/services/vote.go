package services

import (
	"time"

	"github.com/Vandammecasper/voting-app/internal/models"

	"gorm.io/gorm"
)

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

func (s *VoteService) List(lobbyID string) ([]models.Vote, error) {
	var votes []models.Vote
	if err := s.db.Where("lobby_id = ?", lobbyID).
		Order("submitted_at ASC").
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *VoteService) Get(lobbyID, userID string) (*models.Vote, error) {
	var vote models.Vote
	if err := s.db.Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		First(&vote).Error; err != nil {
		return nil, ErrNotFound
	}
	return &vote, nil
}

// Put stores a vote. Only the voter may write their own entry, the voter
// must be a participant of the lobby, and votes are write-once: a second
// write for the same voter is a conflict, never an overwrite.
func (s *VoteService) Put(callerID, lobbyID, userID string, v models.Vote) (*models.Vote, error) {
	if callerID != userID {
		return nil, ErrForbidden
	}
	if _, err := fetchLobby(s.db, lobbyID); err != nil {
		return nil, err
	}

	var participantCount int64
	s.db.Model(&models.Participant{}).
		Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Count(&participantCount)
	if participantCount == 0 {
		return nil, ErrForbidden
	}

	var existing int64
	s.db.Model(&models.Vote{}).
		Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Count(&existing)
	if existing > 0 {
		return nil, ErrConflict
	}

	if v.MVPName == "" || v.LoserName == "" {
		return nil, ErrInvalid
	}

	v.LobbyID = lobbyID
	v.UserID = userID
	if v.SubmittedAt.IsZero() {
		v.SubmittedAt = time.Now()
	}
	if err := s.db.Create(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VoteService) Delete(callerID, lobbyID, userID string) error {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return err
	}
	if callerID != userID && callerID != lobby.CreatorID {
		return ErrForbidden
	}
	return s.db.Delete(&models.Vote{}, "lobby_id = ? AND user_id = ?", lobbyID, userID).Error
}

// DeleteAll drops the whole vote subtree of a lobby, creator only.
func (s *VoteService) DeleteAll(callerID, lobbyID string) error {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != callerID {
		return ErrForbidden
	}
	return s.db.Delete(&models.Vote{}, "lobby_id = ?", lobbyID).Error
}
