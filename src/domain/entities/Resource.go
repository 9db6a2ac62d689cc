package entities

// Um recurso de aprendizado atribuído a exatamente uma skill.
// PeerIndex é uma referência posicional à lista de peers do dono no
// momento da resposta, não uma foreign key.
type Resource struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Skill     string `json:"skill"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Note      string `json:"note"`
	Author    string `json:"author"`
	PeerIndex *int   `json:"peer_index,omitempty"`
}
