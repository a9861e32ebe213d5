package chat

import "gosocial/backend/internal/models"

// BuildConversation renders a room's ordered history into the directional
// view of the conversation endpoint, keyed by the peer's username: entries
// sent by the peer are "incoming", entries sent by the requester "outgoing".
// Input order is preserved; no I/O happens here.
func BuildConversation(peer *models.User, messages []models.Message) map[string][]models.ConversationMessage {
	entries := make([]models.ConversationMessage, 0, len(messages))
	for _, msg := range messages {
		direction := models.DirectionOutgoing
		if msg.SenderID == peer.ID {
			direction = models.DirectionIncoming
		}
		entries = append(entries, models.ConversationMessage{
			Type:    direction,
			Body:    msg.Body,
			Created: msg.CreatedAt,
		})
	}
	return map[string][]models.ConversationMessage{peer.Username: entries}
}
