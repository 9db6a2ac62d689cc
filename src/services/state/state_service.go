package state

import (
	"skillgraphpoc/src/repositories"
	"skillgraphpoc/src/services/events"
)

type StateService struct {
	cachedStateRepository *repositories.CachedStateRepository
	stateWriteRepository  *repositories.StateWriteRepository
	stateQueryRepository  *repositories.StateQueryRepository
	accountRepository     *repositories.AccountRepository
	eventPublisher        *events.StateEventPublisher
}

func NewStateService(
	cachedStateRepository *repositories.CachedStateRepository,
	stateWriteRepository *repositories.StateWriteRepository,
	stateQueryRepository *repositories.StateQueryRepository,
	accountRepository *repositories.AccountRepository,
	eventPublisher *events.StateEventPublisher,
) *StateService {
	return &StateService{
		cachedStateRepository: cachedStateRepository,
		stateWriteRepository:  stateWriteRepository,
		stateQueryRepository:  stateQueryRepository,
		accountRepository:     accountRepository,
		eventPublisher:        eventPublisher,
	}
}
