package memstore

import "context"

func (s *Store) SetDisplayName(ctx context.Context, userID, displayName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.names[userID] = displayName
	return nil
}

func (s *Store) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		if name, ok := s.state.names[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}
