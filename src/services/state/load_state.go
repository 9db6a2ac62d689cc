package state

import (
	"context"
	"fmt"

	"skillgraphpoc/src/domain"
)

// LoadState monta a visão mesclada do usuário: perfil, skills, peers e os
// recursos próprios concatenados com os recursos dos peers mútuos.
func (s *StateService) LoadState(ctx context.Context, userID int64) (domain.StateDocument, error) {
	if userID == 0 {
		return domain.StateDocument{}, domain.ErrMissingUserID
	}

	state, err := s.cachedStateRepository.LoadUserState(ctx, userID)
	if err != nil {
		return domain.StateDocument{}, fmt.Errorf("StateService.LoadState - failed to load state rows: %w", err)
	}

	return s.buildStateDocument(state), nil
}

// buildStateDocument transforma as linhas cruas no documento de resposta.
// Conta inexistente ou campos malformados degradam para defaults.
func (s *StateService) buildStateDocument(state domain.UserStateRows) domain.StateDocument {
	document := domain.StateDocument{
		Profile:   domain.Profile{Companies: []string{}},
		MySkills:  make([]domain.SkillRef, 0, len(state.Skills)),
		Peers:     make([]domain.PeerEntry, 0, len(state.Peers)),
		Resources: make([]domain.ResourceEntry, 0, len(state.Resources)+len(state.SharedResources)),
	}

	if state.Account != nil {
		document.Profile = domain.Profile{
			Name:      state.Account.Name,
			Meta:      state.Account.Meta,
			Companies: domain.DecodeCompanies(state.Account.Company),
			Avatar:    state.Account.Avatar,
		}
	}

	for _, skill := range state.Skills {
		document.MySkills = append(document.MySkills, domain.SkillRef{Name: skill.Name, Company: skill.Company})
	}

	// Organizar as peer skills em um mapa para acesso rápido O(1)
	peerSkillMap := make(map[int64][]domain.SkillRef)
	for _, peerSkill := range state.PeerSkills {
		peerSkillMap[peerSkill.PeerID] = append(peerSkillMap[peerSkill.PeerID], domain.SkillRef{
			Name:    peerSkill.Name,
			Company: peerSkill.Company,
		})
	}

	// Posição de cada linked account na lista atual de peers; é para essa
	// posição que o peerIndex dos recursos compartilhados é reescrito.
	positionByLinkedAccount := make(map[int64]int)

	for i, peer := range state.Peers {
		skills := peerSkillMap[peer.ID]
		if skills == nil {
			skills = make([]domain.SkillRef, 0)
		}

		document.Peers = append(document.Peers, domain.PeerEntry{
			Name:            peer.Name,
			Company:         peer.Company,
			Skills:          skills,
			LinkedAccountID: peer.LinkedAccountID,
		})

		if peer.LinkedAccountID != nil {
			if _, exists := positionByLinkedAccount[*peer.LinkedAccountID]; !exists {
				positionByLinkedAccount[*peer.LinkedAccountID] = i
			}
		}
	}

	// Recursos próprios primeiro, com o peer_index original.
	for _, resource := range state.Resources {
		document.Resources = append(document.Resources, domain.ResourceEntry{
			Skill:     resource.Skill,
			Title:     resource.Title,
			URL:       resource.URL,
			Note:      resource.Note,
			Author:    resource.Author,
			PeerIndex: resource.PeerIndex,
		})
	}

	// Depois os compartilhados, com o peerIndex recalculado neste load.
	for _, resource := range state.SharedResources {
		entry := domain.ResourceEntry{
			Skill:  resource.Skill,
			Title:  resource.Title,
			URL:    resource.URL,
			Note:   resource.Note,
			Author: resource.Author,
		}

		if position, exists := positionByLinkedAccount[resource.UserID]; exists {
			value := position
			entry.PeerIndex = &value
		}

		document.Resources = append(document.Resources, entry)
	}

	return document
}
