package http

import (
	"encoding/json"
	"log"
	"net/http"

	"skillgraphpoc/src/domain"
)

// SaveStateRequestDTO é o payload do full-replace. Skills chegam tanto como
// string simples quanto como {skill, company}; o SkillRef normaliza no
// unmarshal e o resto do pipeline só vê a forma canônica.
type SaveStateRequestDTO struct {
	UserID    int64             `json:"userId" validate:"required,gt=0"`
	Profile   *ProfileDTO       `json:"profile,omitempty"`
	MySkills  []domain.SkillRef `json:"mySkills"`
	Peers     []PeerDTO         `json:"peers"`
	Resources []ResourceDTO     `json:"resources"`
}

type ProfileDTO struct {
	Name      string   `json:"name"`
	Meta      string   `json:"meta"`
	Companies []string `json:"companies"`
	Avatar    string   `json:"avatar"`
}

type PeerDTO struct {
	Name            string            `json:"name"`
	Company         string            `json:"company"`
	Skills          []domain.SkillRef `json:"skills"`
	LinkedAccountID *int64            `json:"linkedAccountId,omitempty"`
}

type ResourceDTO struct {
	Skill     domain.SkillRef `json:"skill"`
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Note      string          `json:"note"`
	Author    string          `json:"author"`
	PeerIndex *int            `json:"peerIndex,omitempty"`
}

type CredentialsDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func MapRequestToDomain(request SaveStateRequestDTO) domain.SaveStateRequest {
	saveRequest := domain.SaveStateRequest{
		UserID: request.UserID,
		Skills: request.MySkills,
	}

	if request.Profile != nil {
		saveRequest.Profile = &domain.Profile{
			Name:      request.Profile.Name,
			Meta:      request.Profile.Meta,
			Companies: request.Profile.Companies,
			Avatar:    request.Profile.Avatar,
		}
	}

	saveRequest.Peers = make([]domain.PeerInput, 0, len(request.Peers))
	for _, peer := range request.Peers {
		saveRequest.Peers = append(saveRequest.Peers, domain.PeerInput{
			Name:            peer.Name,
			Company:         peer.Company,
			Skills:          peer.Skills,
			LinkedAccountID: peer.LinkedAccountID,
		})
	}

	saveRequest.Resources = make([]domain.ResourceInput, 0, len(request.Resources))
	for _, resource := range request.Resources {
		saveRequest.Resources = append(saveRequest.Resources, domain.ResourceInput{
			Skill:     resource.Skill,
			Title:     resource.Title,
			URL:       resource.URL,
			Note:      resource.Note,
			Author:    resource.Author,
			PeerIndex: resource.PeerIndex,
		})
	}

	return saveRequest
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
