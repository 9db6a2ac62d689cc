package stubs

import (
	"skillgraphpoc/src/domain"

	"github.com/brianvoe/gofakeit/v6"
)

type SaveRequestStub struct {
	request domain.SaveStateRequest
}

func NewSaveRequestStub() SaveRequestStub {
	request := domain.SaveStateRequest{
		Profile: &domain.Profile{
			Name:      gofakeit.Name(),
			Meta:      gofakeit.JobTitle(),
			Companies: []string{gofakeit.Company()},
			Avatar:    gofakeit.URL(),
		},
		Skills: []domain.SkillRef{
			{Name: gofakeit.ProgrammingLanguage(), Company: gofakeit.Company()},
		},
	}

	return SaveRequestStub{request: request}
}

func (srs SaveRequestStub) WithUserID(userID int64) SaveRequestStub {
	srs.request.UserID = userID
	return srs
}

func (srs SaveRequestStub) WithProfile(profile *domain.Profile) SaveRequestStub {
	srs.request.Profile = profile
	return srs
}

func (srs SaveRequestStub) WithSkills(skills ...domain.SkillRef) SaveRequestStub {
	srs.request.Skills = skills
	return srs
}

func (srs SaveRequestStub) WithPeers(peers ...domain.PeerInput) SaveRequestStub {
	srs.request.Peers = peers
	return srs
}

func (srs SaveRequestStub) WithResources(resources ...domain.ResourceInput) SaveRequestStub {
	srs.request.Resources = resources
	return srs
}

func (srs SaveRequestStub) Get() domain.SaveStateRequest {
	return srs.request
}

// NewLinkedPeer é o atalho para um peer apontando para outra conta real.
func NewLinkedPeer(name string, linkedAccountID int64) domain.PeerInput {
	return domain.PeerInput{
		Name:            name,
		Company:         gofakeit.Company(),
		Skills:          []domain.SkillRef{},
		LinkedAccountID: &linkedAccountID,
	}
}

// NewResource é o atalho para um recurso atribuído a uma skill.
func NewResource(skillName string, title string) domain.ResourceInput {
	return domain.ResourceInput{
		Skill:  domain.SkillRef{Name: skillName},
		Title:  title,
		URL:    gofakeit.URL(),
		Note:   gofakeit.Sentence(6),
		Author: gofakeit.Name(),
	}
}
