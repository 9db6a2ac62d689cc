package entities

// Uma skill do próprio usuário. Duplicatas são legais, não há unique.
type Skill struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Name    string `json:"skill"`
	Company string `json:"company"`
}
