package document

import "time"

// ChatMessage is one entry in a room's chat feed. The feed is stored in
// arrival order and bounded per room at ChatHistoryLimit.
type ChatMessage struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomChat returns the messages for a room in arrival order.
func (d *Document) RoomChat(room string) []*ChatMessage {
	var msgs []*ChatMessage
	for _, m := range d.Chat {
		if m.Room == room {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// TrimRoomChat evicts the oldest messages of a room until at most limit
// remain. Messages of other rooms are untouched.
func (d *Document) TrimRoomChat(room string, limit int) {
	count := 0
	for _, m := range d.Chat {
		if m.Room == room {
			count++
		}
	}
	if count <= limit {
		return
	}

	drop := count - limit
	kept := d.Chat[:0]
	for _, m := range d.Chat {
		if m.Room == room && drop > 0 {
			drop--
			continue
		}
		kept = append(kept, m)
	}
	d.Chat = kept
}
