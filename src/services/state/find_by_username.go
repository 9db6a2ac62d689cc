package state

import (
	"context"
	"fmt"

	"skillgraphpoc/src/domain"
)

// FindByUsername busca uma conta por match exato case-insensitive e devolve
// a projeção usada para linkar essa conta como peer. Sem match devolve
// (nil, nil), não erro.
func (s *StateService) FindByUsername(ctx context.Context, query string) (*domain.AccountMatch, error) {
	if query == "" {
		return nil, nil
	}

	account, err := s.accountRepository.FindByUsername(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("StateService.FindByUsername - account lookup failed: %w", err)
	}
	if account == nil {
		return nil, nil
	}

	skills, err := s.stateQueryRepository.GetSkillsByUserID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("StateService.FindByUsername - skills lookup failed: %w", err)
	}

	name := account.Name
	if name == "" {
		name = account.Username
	}

	match := &domain.AccountMatch{
		AccountID: account.ID,
		Name:      name,
		Companies: domain.DecodeCompanies(account.Company),
		Skills:    make([]domain.SkillRef, 0, len(skills)),
	}

	for _, skill := range skills {
		match.Skills = append(match.Skills, domain.SkillRef{Name: skill.Name, Company: skill.Company})
	}

	return match, nil
}
