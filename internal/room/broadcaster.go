package room

type Broadcaster interface {
	Broadcast(roomID string, action string, data interface{})
}
