package stubs

import (
	"encoding/json"
	"fmt"
	"time"

	"skillgraphpoc/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type AccountStub struct {
	account entities.Account
}

func NewAccountStub() AccountStub {
	now := time.Now().UTC()

	companies, _ := json.Marshal([]string{gofakeit.Company()})

	account := entities.Account{
		Username:  fmt.Sprintf("01fe%s@kletech.ac.in", gofakeit.LetterN(8)),
		Password:  gofakeit.Password(true, true, true, false, false, 12),
		Name:      gofakeit.Name(),
		Meta:      gofakeit.JobTitle(),
		Company:   string(companies),
		Avatar:    gofakeit.URL(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return AccountStub{account: account}
}

func (as AccountStub) WithUsername(username string) AccountStub {
	as.account.Username = username
	return as
}

func (as AccountStub) WithName(name string) AccountStub {
	as.account.Name = name
	return as
}

func (as AccountStub) WithCompany(rawCompany string) AccountStub {
	as.account.Company = rawCompany
	return as
}

func (as AccountStub) Get() entities.Account {
	return as.account
}
