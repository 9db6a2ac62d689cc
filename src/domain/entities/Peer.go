package entities

// Um peer do usuário. LinkedAccountID, quando presente, é a aresta
// direcionada user_id -> linked_account_id no grafo social.
type Peer struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	Company         string `json:"company"`
	LinkedAccountID *int64 `json:"linked_account_id,omitempty"`
}
