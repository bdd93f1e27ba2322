package ws

import "pickup-party/internal/room"

type RoomManager interface {
	CreateRoom(roomID, playerID, playerName, ruleset string) (*room.Room, error)
	JoinRoom(roomID, playerID, playerName string) (*room.Room, error)
	StartGame(roomID string) error
	Restart(roomID string) error
	Leave(roomID, playerID string) error
	Disconnect(playerID string)
	ToggleHold(roomID, playerID string, index int) error
	RollReels(roomID, playerID string) error
	ChooseCombo(roomID, playerID, comboName string) error
	ChooseSymbol(roomID, playerID, symbolKey string) error
}
