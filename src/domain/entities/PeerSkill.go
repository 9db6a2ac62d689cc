package entities

// Skill atribuída a um peer. Morre junto com o peer (cascade).
type PeerSkill struct {
	ID      int64  `json:"id"`
	PeerID  int64  `json:"peer_id"`
	Name    string `json:"skill"`
	Company string `json:"company"`
}
