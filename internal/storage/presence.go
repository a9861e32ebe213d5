package storage

// onlineSetKey is the Redis set holding the ids of users with an open chat
// channel. The set is best-effort and process-scoped state mirrored into
// Redis; it is not a delivery guarantee of any kind.
const onlineSetKey = "online_users"

// MarkOnline records that the user has at least one open channel.
func (s *Service) MarkOnline(userID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.SAdd(s.Ctx, onlineSetKey, uint64(userID)).Err()
}

// MarkOffline clears the user's presence entry.
func (s *Service) MarkOffline(userID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.SRem(s.Ctx, onlineSetKey, uint64(userID)).Err()
}

// IsOnline reports whether the user currently has an open channel.
func (s *Service) IsOnline(userID uint) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	return s.Redis.SIsMember(s.Ctx, onlineSetKey, uint64(userID)).Result()
}
