package test_seeder

import (
	"context"

	"skillgraphpoc/src/domain/entities"

	"github.com/jackc/pgx/v5/pgtype"
)

func (ts TestSeeder) SelectSkillsByUserID(ctx context.Context, userID int64) ([]entities.Skill, error) {
	query := `SELECT id, user_id, skill, company FROM skills WHERE user_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, userID)
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

func (ts TestSeeder) SelectPeersByUserID(ctx context.Context, userID int64) ([]entities.Peer, error) {
	query := `SELECT id, user_id, name, company, linked_account_id FROM peers WHERE user_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, userID)
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

func (ts TestSeeder) SelectPeerSkillsByPeerID(ctx context.Context, peerID int64) ([]entities.PeerSkill, error) {
	query := `SELECT id, peer_id, skill, company FROM peer_skills WHERE peer_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, peerID)
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

func (ts TestSeeder) SelectResourcesByUserID(ctx context.Context, userID int64) ([]entities.Resource, error) {
	query := `
		SELECT id, user_id, skill, title, url, note, author, peer_index
		FROM resources WHERE user_id = $1 ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, userID)
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
