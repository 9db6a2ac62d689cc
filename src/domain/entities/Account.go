package entities

import "time"

// Uma conta registrada. O campo Company guarda a lista de empresas
// serializada como JSON; a decodificação tolerante fica no domain.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	// Hash bcrypt. Nunca sai em resposta nem vai para o cache.
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Meta      string    `json:"meta"`
	Company   string    `json:"company"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
