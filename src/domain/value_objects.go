package domain

import (
	"encoding/json"
	"errors"
	"skillgraphpoc/src/domain/entities"
	"time"
)

var (
	ErrMissingUserID = errors.New("userId is required")

	ErrAccountNotFound = errors.New("account not found")

	ErrUsernameTaken = errors.New("username already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############ PROCESSO DE ESCRITA DO ESTADO #################
// ############################################################

// SkillRef é a forma canônica de uma referência de skill.
// A borda HTTP aceita tanto uma string simples quanto o par
// {skill, company}; depois do parse só essa struct circula.
type SkillRef struct {
	Name    string
	Company string
}

func (s SkillRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Skill   string `json:"skill"`
		Company string `json:"company"`
	}{Skill: s.Name, Company: s.Company})
}

func (s *SkillRef) UnmarshalJSON(data []byte) error {
	// forma simples: "Go"
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		s.Name = bare
		s.Company = ""
		return nil
	}

	// forma completa: {"skill": "Go", "company": "Acme"}
	var full struct {
		Skill   string `json:"skill"`
		Company string `json:"company"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}

	s.Name = full.Skill
	s.Company = full.Company
	return nil
}

// Profile agrupa os campos de perfil gravados na tabela users.
type Profile struct {
	Name      string   `json:"name"`
	Meta      string   `json:"meta"`
	Companies []string `json:"companies"`
	Avatar    string   `json:"avatar"`
}

// PeerInput é uma entrada de peer dentro de um save.
type PeerInput struct {
	Name            string
	Company         string
	Skills          []SkillRef
	LinkedAccountID *int64
}

// ResourceInput é um recurso de aprendizado dentro de um save.
type ResourceInput struct {
	Skill     SkillRef
	Title     string
	URL       string
	Note      string
	Author    string
	PeerIndex *int
}

// SaveStateRequest é o DTO completo que o serviço usa para um full-replace.
type SaveStateRequest struct {
	UserID    int64
	Profile   *Profile
	Skills    []SkillRef
	Peers     []PeerInput
	Resources []ResourceInput
}

// ############################################################
// ############ PROCESSO DE LEITURA DO ESTADO #################
// ############################################################

// UserStateRows é o agregado bruto que o repositório de leitura devolve:
// as linhas do próprio usuário mais a projeção dos peers mútuos.
// É a unidade que vai para o cache, então tudo aqui é serializável.
type UserStateRows struct {
	Account         *entities.Account    `json:"account"`
	Skills          []entities.Skill     `json:"skills"`
	Peers           []entities.Peer      `json:"peers"`
	PeerSkills      []entities.PeerSkill `json:"peer_skills"`
	Resources       []entities.Resource  `json:"resources"`
	SharerIDs       []int64              `json:"sharer_ids"`
	SharedResources []entities.Resource  `json:"shared_resources"`
}

// PeerEntry é um peer já montado para resposta.
type PeerEntry struct {
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Skills          []SkillRef `json:"skills"`
	LinkedAccountID *int64     `json:"linkedAccountId,omitempty"`
}

// ResourceEntry é um recurso já montado para resposta. Para recursos
// compartilhados o PeerIndex é recalculado em cada load, apontando para a
// posição do peer cujo linked account é o autor do compartilhamento.
type ResourceEntry struct {
	Skill     string `json:"skill"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Note      string `json:"note"`
	Author    string `json:"author"`
	PeerIndex *int   `json:"peerIndex"`
}

// StateDocument é a visão mesclada devolvida por um load.
type StateDocument struct {
	Profile   Profile         `json:"profile"`
	MySkills  []SkillRef      `json:"mySkills"`
	Peers     []PeerEntry     `json:"peers"`
	Resources []ResourceEntry `json:"resources"`
}

// AccountMatch é a projeção devolvida pela busca por username.
type AccountMatch struct {
	AccountID int64      `json:"id"`
	Name      string     `json:"name"`
	Companies []string   `json:"company"`
	Skills    []SkillRef `json:"skills"`
}

// StateSavedEvent é o evento de domínio publicado após cada save commitado.
type StateSavedEvent struct {
	AccountID     int64     `json:"account_id"`
	SkillCount    int       `json:"skill_count"`
	PeerCount     int       `json:"peer_count"`
	ResourceCount int       `json:"resource_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DecodeCompanies aplica a regra de degradação do campo users.company:
// JSON válido vira a lista decodificada, valor malformado vira lista de um
// elemento com o valor cru, vazio vira lista vazia.
func DecodeCompanies(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var companies []string
	if err := json.Unmarshal([]byte(raw), &companies); err != nil {
		return []string{raw}
	}

	if companies == nil {
		return []string{}
	}

	return companies
}
