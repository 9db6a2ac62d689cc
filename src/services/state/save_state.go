package state

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillgraphpoc/src/domain"
)

// SaveState substitui o estado inteiro do usuário pelo payload recebido.
func (s *StateService) SaveState(ctx context.Context, request domain.SaveStateRequest) error {
	if request.UserID == 0 {
		return domain.ErrMissingUserID
	}

	if err := s.stateWriteRepository.ReplaceState(ctx, request); err != nil {
		return fmt.Errorf("StateService.SaveState - failed to replace state: %w", err)
	}

	// Evento best-effort: o save já commitou, falha de publicação só loga.
	if s.eventPublisher != nil {
		event := domain.StateSavedEvent{
			AccountID:     request.UserID,
			SkillCount:    len(request.Skills),
			PeerCount:     len(request.Peers),
			ResourceCount: len(request.Resources),
			OccurredAt:    time.Now().UTC(),
		}

		if err := s.eventPublisher.PublishStateSaved(ctx, event); err != nil {
			log.Printf("StateService.SaveState - failed to publish state saved event: %v", err)
		}
	}

	return nil
}
