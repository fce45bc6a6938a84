package services

import (
	"time"

	"github.com/Vandammecasper/voting-app/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

func (s *MembershipService) List(lobbyID string) ([]models.Participant, error) {
	var participants []models.Participant
	if err := s.db.Where("lobby_id = ?", lobbyID).
		Order("joined_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *MembershipService) Get(lobbyID, userID string) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		First(&participant).Error; err != nil {
		return nil, ErrNotFound
	}
	return &participant, nil
}

// Put writes a participant entry. Users write their own entry; the lobby
// creator may also write any entry. The isCreator flag is only valid on
// the entry keyed by the lobby's creatorId.
func (s *MembershipService) Put(callerID, lobbyID, userID string, p models.Participant) (*models.Participant, error) {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return nil, err
	}
	if callerID != userID && callerID != lobby.CreatorID {
		return nil, ErrForbidden
	}
	if p.Name == "" {
		return nil, ErrInvalid
	}
	if p.IsCreator && userID != lobby.CreatorID {
		return nil, ErrInvalid
	}

	p.LobbyID = lobbyID
	p.UserID = userID
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now()
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Patch merges fields into a participant entry. A user may change their
// own name and clear their own nameChangeRequested flag; only the lobby
// creator may raise the flag.
func (s *MembershipService) Patch(callerID, lobbyID, userID string, fields map[string]interface{}) (*models.Participant, error) {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return nil, err
	}
	participant, err := s.Get(lobbyID, userID)
	if err != nil {
		return nil, err
	}

	isSelf := callerID == userID
	isCreator := callerID == lobby.CreatorID

	for key, val := range fields {
		switch key {
		case "name":
			if !isSelf {
				return nil, ErrForbidden
			}
			name, ok := val.(string)
			if !ok || name == "" {
				return nil, ErrInvalid
			}
			participant.Name = name
		case "nameChangeRequested":
			flag, ok := val.(bool)
			if !ok {
				return nil, ErrInvalid
			}
			if flag && !isCreator {
				return nil, ErrForbidden
			}
			if !flag && !isSelf && !isCreator {
				return nil, ErrForbidden
			}
			participant.NameChangeRequested = flag
		default:
			return nil, ErrInvalid
		}
	}

	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// Delete removes one participant entry: the user themselves (voluntary
// exit) or the lobby creator (removal).
func (s *MembershipService) Delete(callerID, lobbyID, userID string) error {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return err
	}
	if callerID != userID && callerID != lobby.CreatorID {
		return ErrForbidden
	}
	return s.db.Delete(&models.Participant{}, "lobby_id = ? AND user_id = ?", lobbyID, userID).Error
}

// DeleteAll drops the whole participant subtree of a lobby, creator only.
// Used by history deletion while the lobby record still exists.
func (s *MembershipService) DeleteAll(callerID, lobbyID string) error {
	lobby, err := fetchLobby(s.db, lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != callerID {
		return ErrForbidden
	}
	return s.db.Delete(&models.Participant{}, "lobby_id = ?", lobbyID).Error
}
