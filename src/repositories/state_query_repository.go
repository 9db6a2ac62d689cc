package repositories

import (
	"context"
	"fmt"
	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/domain/entities"
	"skillgraphpoc/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StateQueryRepository struct {
	pool *pgxpool.Pool
}

func NewStateQueryRepository(pool *pgxpool.Pool) *StateQueryRepository {
	return &StateQueryRepository{pool: pool}
}

// LoadUserState lê todas as linhas do usuário e a projeção dos peers
// mútuos em consultas em lote. Conta inexistente não é erro nesse caminho;
// o chamador degrada para o documento default.
func (sqr *StateQueryRepository) LoadUserState(ctx context.Context, userID int64) (domain.UserStateRows, error) {
	var state domain.UserStateRows

	account, err := sqr.findAccountByID(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("StateQueryRepository.LoadUserState - profile query failed: %w", err)
	}
	state.Account = account

	state.Skills, err = sqr.GetSkillsByUserID(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("StateQueryRepository.LoadUserState - skills query failed: %w", err)
	}

	state.Peers, err = sqr.getPeersByUserID(ctx, userID)
	if err != nil {
		return state, fmt.Errorf("StateQueryRepository.LoadUserState - peers query failed: %w", err)
	}

	peerIDs := make([]int64, 0, len(state.Peers))
	for _, peer := range state.Peers {
		peerIDs = append(peerIDs, peer.ID)
	}

	state.PeerSkills, err = sqr.getPeerSkillsByPeerIDs(ctx, peerIDs)
	if err != nil {
		return state, fmt.Errorf("StateQueryRepository.LoadUserState - peer skills query failed: %w", err)
	}

	state.Resources, err = sqr.getResourcesByUserIDs(ctx, []int64{userID})
	if err != nil {
		return state, fmt.Errorf("StateQueryRepository.LoadUserState - resources query failed: %w", err)
	}

	// Candidatos à reciprocidade: linked ids distintos entre os peers.
	seen := make(map[int64]bool)
	candidates := make([]int64, 0)
	for _, peer := range state.Peers {
		if peer.LinkedAccountID == nil || seen[*peer.LinkedAccountID] {
			continue
		}
		seen[*peer.LinkedAccountID] = true
		candidates = append(candidates, *peer.LinkedAccountID)
	}

	state.SharerIDs, state.SharedResources, err = sqr.FindMutualSharers(ctx, userID, candidates)
	if err != nil {
		return state, fmt.Errorf("StateQueryRepository.LoadUserState - reciprocity query failed: %w", err)
	}

	return state, nil
}

// FindMutualSharers seleciona, entre os candidatos, as contas que também
// listam userID como linked peer (aresta recíproca) e devolve os recursos
// completos dessas contas. São duas queries em lote, nunca uma por
// candidato, e a checagem é estritamente de profundidade 1.
func (sqr *StateQueryRepository) FindMutualSharers(ctx context.Context, userID int64, candidateLinkedIDs []int64) ([]int64, []entities.Resource, error) {
	if len(candidateLinkedIDs) == 0 {
		return nil, nil, nil
	}

	mutualQuery := `
		SELECT DISTINCT
			user_id
		FROM
			peers
		WHERE
			linked_account_id = $1
			AND user_id = ANY($2)
		ORDER BY
			user_id;
	`

	rows, err := sqr.pool.Query(ctx, mutualQuery, userID, candidateLinkedIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("StateQueryRepository.FindMutualSharers - mutual edge query failed: %w", err)
	}
	defer rows.Close()

	var sharerIDs []int64
	for rows.Next() {
		var sharerID int64
		if err := rows.Scan(&sharerID); err != nil {
			return nil, nil, fmt.Errorf("StateQueryRepository.FindMutualSharers - failed to scan sharer id: %w", err)
		}
		sharerIDs = append(sharerIDs, sharerID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("StateQueryRepository.FindMutualSharers - error iterating sharer rows: %w", err)
	}

	if len(sharerIDs) == 0 {
		return nil, nil, nil
	}

	sharedResources, err := sqr.getResourcesByUserIDs(ctx, sharerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("StateQueryRepository.FindMutualSharers - shared resources query failed: %w", err)
	}

	return sharerIDs, sharedResources, nil
}

// GetSkillsByUserID é usado tanto no load quanto na projeção da busca.
func (sqr *StateQueryRepository) GetSkillsByUserID(ctx context.Context, userID int64) ([]entities.Skill, error) {
	query := `SELECT id, user_id, skill, company FROM skills WHERE user_id = $1 ORDER BY id`

	rows, err := sqr.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []entities.Skill
	for rows.Next() {
		var skill entities.Skill
		var company pgtype.Text

		if err := rows.Scan(&skill.ID, &skill.UserID, &skill.Name, &company); err != nil {
			return nil, err
		}
		skill.Company = company.String

		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

func (sqr *StateQueryRepository) findAccountByID(ctx context.Context, userID int64) (*entities.Account, error) {
	query := `SELECT id, username, name, meta, company, avatar FROM users WHERE id = $1`

	var account entities.Account
	var name, meta, company, avatar pgtype.Text

	err := sqr.pool.QueryRow(ctx, query, userID).Scan(&account.ID, &account.Username, &name, &meta, &company, &avatar)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	account.Name = name.String
	account.Meta = meta.String
	account.Company = company.String
	account.Avatar = avatar.String

	return &account, nil
}

// Peers saem em id crescente: a ordem de inserção é o contrato que mantém
// os peer_index estáveis entre save e load.
func (sqr *StateQueryRepository) getPeersByUserID(ctx context.Context, userID int64) ([]entities.Peer, error) {
	query := `SELECT id, user_id, name, company, linked_account_id FROM peers WHERE user_id = $1 ORDER BY id`

	rows, err := sqr.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peers []entities.Peer
	for rows.Next() {
		var peer entities.Peer
		var company pgtype.Text
		var linkedID pgtype.Int8

		if err := rows.Scan(&peer.ID, &peer.UserID, &peer.Name, &company, &linkedID); err != nil {
			return nil, err
		}
		peer.Company = company.String
		if linkedID.Valid {
			value := linkedID.Int64
			peer.LinkedAccountID = &value
		}

		peers = append(peers, peer)
	}

	return peers, rows.Err()
}

func (sqr *StateQueryRepository) getPeerSkillsByPeerIDs(ctx context.Context, peerIDs []int64) ([]entities.PeerSkill, error) {
	if len(peerIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, peer_id, skill, company FROM peer_skills WHERE peer_id = ANY($1) ORDER BY id`

	rows, err := sqr.pool.Query(ctx, query, peerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var peerSkills []entities.PeerSkill
	for rows.Next() {
		var peerSkill entities.PeerSkill
		var company pgtype.Text

		if err := rows.Scan(&peerSkill.ID, &peerSkill.PeerID, &peerSkill.Name, &company); err != nil {
			return nil, err
		}
		peerSkill.Company = company.String

		peerSkills = append(peerSkills, peerSkill)
	}

	return peerSkills, rows.Err()
}

func (sqr *StateQueryRepository) getResourcesByUserIDs(ctx context.Context, userIDs []int64) ([]entities.Resource, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, user_id, skill, title, url, note, author, peer_index
		FROM resources WHERE user_id = ANY($1) ORDER BY user_id, id`

	rows, err := sqr.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []entities.Resource
	for rows.Next() {
		var resource entities.Resource
		var note, author pgtype.Text
		var peerIndex pgtype.Int4

		if err := rows.Scan(&resource.ID, &resource.UserID, &resource.Skill, &resource.Title, &resource.URL, &note, &author, &peerIndex); err != nil {
			return nil, err
		}
		resource.Note = note.String
		resource.Author = author.String
		if peerIndex.Valid {
			value := int(peerIndex.Int32)
			resource.PeerIndex = &value
		}

		resources = append(resources, resource)
	}

	return resources, rows.Err()
}
