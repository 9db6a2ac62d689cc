package test_seeder

import (
	"context"
	"fmt"

	"skillgraphpoc/src/domain/entities"
	"skillgraphpoc/src/infra/postgres"
)

// InsertAccount inserts an account into the database for testing
func (ts TestSeeder) InsertAccount(ctx context.Context, account *entities.Account) {
	query := `
		INSERT INTO users (username, password, name, meta, company, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		account.Username,
		account.Password,
		account.Name,
		account.Meta,
		account.Company,
		account.Avatar,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertAccount failed: %v", err))
	}
}

// InsertSkill inserts an owned skill for testing
func (ts TestSeeder) InsertSkill(ctx context.Context, skill *entities.Skill) {
	query := `INSERT INTO skills (user_id, skill, company) VALUES ($1, $2, $3) RETURNING id`

	err := ts.pool.QueryRow(ctx, query, skill.UserID, skill.Name, skill.Company).Scan(&skill.ID)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertSkill failed: %v", err))
	}
}

// InsertPeer inserts a peer entry, optionally linked to another account
func (ts TestSeeder) InsertPeer(ctx context.Context, peer *entities.Peer) {
	query := `
		INSERT INTO peers (user_id, name, company, linked_account_id)
		VALUES ($1, $2, $3, $4) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		peer.UserID,
		peer.Name,
		peer.Company,
		postgres.NewNullInt8(peer.LinkedAccountID),
	).Scan(&peer.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertPeer failed: %v", err))
	}
}

// InsertPeerSkill attaches a skill to a previously inserted peer
func (ts TestSeeder) InsertPeerSkill(ctx context.Context, peerSkill *entities.PeerSkill) {
	query := `INSERT INTO peer_skills (peer_id, skill, company) VALUES ($1, $2, $3) RETURNING id`

	err := ts.pool.QueryRow(ctx, query, peerSkill.PeerID, peerSkill.Name, peerSkill.Company).Scan(&peerSkill.ID)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertPeerSkill failed: %v", err))
	}
}

// InsertResource inserts a learning resource for testing
func (ts TestSeeder) InsertResource(ctx context.Context, resource *entities.Resource) {
	query := `
		INSERT INTO resources (user_id, skill, title, url, note, author, peer_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		resource.UserID,
		resource.Skill,
		resource.Title,
		resource.URL,
		resource.Note,
		resource.Author,
		postgres.NewNullInt4(resource.PeerIndex),
	).Scan(&resource.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertResource failed: %v", err))
	}
}
