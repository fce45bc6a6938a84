package services

import (
	"testing"

	"github.com/Vandammecasper/voting-app/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Lobby{},
		&models.LobbyCode{},
		&models.Participant{},
		&models.Vote{},
		&models.HistoryEntry{},
		&models.FeatureRequest{},
		&models.FeatureLike{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// createLobby seeds a waiting lobby owned by creatorID, with its code
// mapping and creator participant, the way a client sets one up.
func createLobby(t *testing.T, db *gorm.DB, creatorID, code string) *models.Lobby {
	t.Helper()
	lobbies := NewLobbyService(db)
	lobby, err := lobbies.Create(creatorID, models.Lobby{
		CreatorID:   creatorID,
		CreatorName: "Alice",
		Code:        code,
	})
	if err != nil {
		t.Fatalf("create lobby: %v", err)
	}
	if err := lobbies.PutCode(creatorID, code, lobby.ID); err != nil {
		t.Fatalf("put code: %v", err)
	}
	if _, err := NewMembershipService(db).Put(creatorID, lobby.ID, creatorID, models.Participant{
		Name:      "Alice",
		IsCreator: true,
	}); err != nil {
		t.Fatalf("put creator participant: %v", err)
	}
	return lobby
}
