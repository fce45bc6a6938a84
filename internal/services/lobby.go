package services

import (
	"time"

	"github.com/Vandammecasper/voting-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LobbyService struct {
	db *gorm.DB
}

func NewLobbyService(db *gorm.DB) *LobbyService {
	return &LobbyService{db: db}
}

func fetchLobby(db *gorm.DB, lobbyID string) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := db.Where("id = ?", lobbyID).First(&lobby).Error; err != nil {
		return nil, ErrNotFound
	}
	return &lobby, nil
}

// Create stores a new lobby under a generated id. The caller must be the
// recorded creator; the join code must be free among live lobbies.
func (s *LobbyService) Create(callerID string, lobby models.Lobby) (*models.Lobby, error) {
	if lobby.CreatorID != callerID {
		return nil, ErrForbidden
	}
	if lobby.CreatorName == "" || len(lobby.Code) != 6 {
		return nil, ErrInvalid
	}
	if lobby.Status == "" {
		lobby.Status = models.LobbyStatusWaiting
	}
	if models.StatusRank(lobby.Status) < 0 {
		return nil, ErrInvalid
	}

	var count int64
	s.db.Model(&models.Lobby{}).Where("code = ?", lobby.Code).Count(&count)
	if count > 0 {
		return nil, ErrConflict
	}

	lobby.ID = uuid.NewString()
	if lobby.CreatedAt.IsZero() {
		lobby.CreatedAt = time.Now()
	}
	if err := s.db.Create(&lobby).Error; err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (s *LobbyService) Get(lobbyID string) (*models.Lobby, error) {
	return fetchLobby(s.db, lobbyID)
}

// Patch merges fields into a lobby. Only the creator may write, only the
// status field is mutable, and the status may never move backwards in
// waiting < voting < results < ranking < completed. Re-writing the
// current status is a no-op, which makes phase transitions idempotent.
func (s *LobbyService) Patch(callerID, lobbyID string, fields map[string]interface{}) (*models.Lobby, error) {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return nil, err
	}
	if lobby.CreatorID != callerID {
		return nil, ErrForbidden
	}

	for key := range fields {
		if key != "status" {
			return nil, ErrInvalid
		}
	}

	raw, ok := fields["status"]
	if !ok {
		return lobby, nil
	}
	status, ok := raw.(string)
	if !ok {
		return nil, ErrInvalid
	}
	next := models.StatusRank(status)
	if next < 0 {
		return nil, ErrInvalid
	}
	if next < models.StatusRank(lobby.Status) {
		return nil, ErrConflict
	}

	lobby.Status = status
	if err := s.db.Save(lobby).Error; err != nil {
		return nil, err
	}
	return lobby, nil
}

func (s *LobbyService) Delete(callerID, lobbyID string) error {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != callerID {
		return ErrForbidden
	}
	return s.db.Delete(&models.Lobby{}, "id = ?", lobbyID).Error
}

// ResolveCode returns the lobby id a join code points at.
func (s *LobbyService) ResolveCode(code string) (string, error) {
	var entry models.LobbyCode
	if err := s.db.Where("code = ?", code).First(&entry).Error; err != nil {
		return "", ErrNotFound
	}
	return entry.LobbyID, nil
}

// PutCode creates the code -> lobby mapping. The referenced lobby must
// already exist and belong to the caller; a code claimed by a different
// lobby is a conflict.
func (s *LobbyService) PutCode(callerID, code, lobbyID string) error {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != callerID {
		return ErrForbidden
	}

	var existing models.LobbyCode
	if err := s.db.Where("code = ?", code).First(&existing).Error; err == nil {
		if existing.LobbyID == lobbyID {
			return nil
		}
		return ErrConflict
	}
	return s.db.Create(&models.LobbyCode{Code: code, LobbyID: lobbyID}).Error
}

// DeleteCode removes a code mapping. While the paired lobby still exists
// only its creator may delete the code; once the lobby is gone the entry
// is an orphan and any signed-in user may clean it up. History deletion
// relies on this: the lobby is deleted first, then its code.
func (s *LobbyService) DeleteCode(callerID, code string) error {
	var entry models.LobbyCode
	if err := s.db.Where("code = ?", code).First(&entry).Error; err != nil {
		return ErrNotFound
	}
	if lobby, err := fetchLobby(s.db, entry.LobbyID); err == nil && lobby.CreatorID != callerID {
		return ErrForbidden
	}
	return s.db.Delete(&models.LobbyCode{}, "code = ?", code).Error
}
