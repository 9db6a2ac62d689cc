package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StateWriteRepository struct {
	writePool             *pgxpool.Pool
	cachedStateRepository *CachedStateRepository
}

func NewStateWriteRepository(writePool *pgxpool.Pool, cachedStateRepository *CachedStateRepository) *StateWriteRepository {
	return &StateWriteRepository{writePool: writePool, cachedStateRepository: cachedStateRepository}
}

// ReplaceState aplica o full-replace do estado do usuário: apaga todas as
// linhas de skills/peers/resources e insere o payload novo, tudo dentro de
// uma única transação. Ou o save inteiro commita ou nada muda; um load
// concorrente nunca enxerga o estado intermediário.
func (r *StateWriteRepository) ReplaceState(ctx context.Context, request domain.SaveStateRequest) error {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("StateWriteRepository.ReplaceState - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if request.Profile != nil {
		companies, err := json.Marshal(request.Profile.Companies)
		if err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to marshal companies: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET name = $1, meta = $2, company = $3, avatar = $4, updated_at = NOW() WHERE id = $5`,
			request.Profile.Name, request.Profile.Meta, string(companies), request.Profile.Avatar, request.UserID,
		)
		if err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to update profile: %w", err)
		}
	}

	// delete-all-then-insert-all. peer_skills caem pelo cascade dos peers.
	for _, table := range []string{"skills", "peers", "resources"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table), request.UserID); err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to clear %s: %w", table, err)
		}
	}

	if len(request.Skills) > 0 {
		skillRows := make([][]interface{}, 0, len(request.Skills))
		for _, skill := range request.Skills {
			skillRows = append(skillRows, []interface{}{request.UserID, skill.Name, skill.Company})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"skills"},
			[]string{"user_id", "skill", "company"},
			pgx.CopyFromRows(skillRows),
		)
		if err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to copy skills: %w", err)
		}
	}

	// Peers entram um a um porque as peer_skills precisam do id gerado.
	// A ordem de inserção define a ordem estável de leitura (id crescente).
	peerSkillRows := make([][]interface{}, 0)
	for _, peer := range request.Peers {
		var peerID int64
		err = tx.QueryRow(ctx,
			`INSERT INTO peers (user_id, name, company, linked_account_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			request.UserID, peer.Name, peer.Company, postgres.NewNullInt8(peer.LinkedAccountID),
		).Scan(&peerID)
		if err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to insert peer %q: %w", peer.Name, err)
		}

		for _, skill := range peer.Skills {
			peerSkillRows = append(peerSkillRows, []interface{}{peerID, skill.Name, skill.Company})
		}
	}

	if len(peerSkillRows) > 0 {
		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"peer_skills"},
			[]string{"peer_id", "skill", "company"},
			pgx.CopyFromRows(peerSkillRows),
		)
		if err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to copy peer skills: %w", err)
		}
	}

	if len(request.Resources) > 0 {
		resourceRows := make([][]interface{}, 0, len(request.Resources))
		for _, resource := range request.Resources {
			resourceRows = append(resourceRows, []interface{}{
				request.UserID,
				resource.Skill.Name,
				resource.Title,
				resource.URL,
				resource.Note,
				resource.Author,
				postgres.NewNullInt4(resource.PeerIndex),
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"resources"},
			[]string{"user_id", "skill", "title", "url", "note", "author", "peer_index"},
			pgx.CopyFromRows(resourceRows),
		)
		if err != nil {
			return fmt.Errorf("StateWriteRepository.ReplaceState - failed to copy resources: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("StateWriteRepository.ReplaceState - failed to commit: %w", err)
	}

	// Invalidar cache em background: a conta que salvou e qualquer visão
	// mesclada registrada sob ela.
	if r.cachedStateRepository != nil {
		go func() {
			if invalidateErr := r.cachedStateRepository.InvalidateByAccountIDs(context.Background(), []int64{request.UserID}); invalidateErr != nil {
				log.Printf("Failed to invalidate cache: %v", invalidateErr)
			}
		}()
	}

	return nil
}
