package accounts_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/helper/env"
	"skillgraphpoc/src/infra/postgres"
	"skillgraphpoc/src/repositories"
	"skillgraphpoc/src/services/accounts"
	"skillgraphpoc/src/test_artefacts/stubs"
	"skillgraphpoc/src/test_artefacts/test_seeder"
)

var _ = Describe("Register validation", func() {
	var accountService *accounts.AccountService

	BeforeEach(func() {
		accountService = accounts.NewAccountService(nil)
	})

	When("the username is empty", func() {
		It("rejects the registration", func() {
			// ACT
			_, err := accountService.Register(context.Background(), "", "secret")

			// ASSERT
			Expect(err).To(MatchError(accounts.ErrMissingCredentials))
		})
	})

	When("the password is empty", func() {
		It("rejects the registration", func() {
			// ACT
			_, err := accountService.Register(context.Background(), "01fealice@kletech.ac.in", "")

			// ASSERT
			Expect(err).To(MatchError(accounts.ErrMissingCredentials))
		})
	})

	When("the username is outside the allow-list", func() {
		It("rejects the registration", func() {
			// ACT
			_, err := accountService.Register(context.Background(), "alice@gmail.com", "secret")

			// ASSERT
			Expect(err).To(MatchError(accounts.ErrUsernameNotAllowed))
		})
	})
})

var _ = Describe("AccountService", func() {
	var (
		readWriteClient *postgres.ReadWriteClient
		testSeeder      test_seeder.TestSeeder
		accountService  *accounts.AccountService
		ctx             context.Context
		err             error
	)

	dbReadHost := env.GetString("TEST_DB_READ_HOST", "")
	dbWriteHost := env.GetString("TEST_DB_WRITE_HOST", "")
	dbReadPort := env.GetString("TEST_DB_READ_PORT", "5432")
	dbWritePort := env.GetString("TEST_DB_WRITE_PORT", "5432")
	dbname := env.GetString("TEST_DB_NAME", "")
	dbUser := env.GetString("TEST_DB_USER", "")
	dbPassword := env.GetString("TEST_DB_PASSWORD", "")
	maxConnections := env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 25)

	BeforeEach(func() {
		if dbWriteHost == "" {
			Skip("TEST_DB_WRITE_HOST não configurado, pulando testes de integração")
		}

		ctx = context.Background()

		readWriteClient, err = postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
		if err != nil {
			panic(err)
		}

		accountRepository := repositories.NewAccountRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
		accountService = accounts.NewAccountService(accountRepository)
		testSeeder = test_seeder.New(readWriteClient.GetWritePool())

		testSeeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if readWriteClient != nil {
			readWriteClient.Close()
		}
	})

	Context("when registering a new account", func() {
		When("the username is free and allowed", func() {
			It("creates the account and stores a bcrypt hash", func() {
				// ACT
				accountID, err := accountService.Register(ctx, "01fealice@kletech.ac.in", "secret")

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(accountID).To(BeNumerically(">", 0))

				account, err := accountService.Authenticate(ctx, "01fealice@kletech.ac.in", "secret")
				Expect(err).NotTo(HaveOccurred())
				Expect(account.ID).To(Equal(accountID))
			})
		})

		When("the username is already taken with a different casing", func() {
			It("rejects the duplicate", func() {
				// ARRANGE
				existing := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &existing)

				// ACT
				_, err := accountService.Register(ctx, strings.ToUpper(existing.Username), "secret")

				// ASSERT
				Expect(err).To(MatchError(domain.ErrUsernameTaken))
			})
		})
	})

	Context("when authenticating", func() {
		When("the password is wrong", func() {
			It("fails with the generic credentials error", func() {
				// ARRANGE
				_, err := accountService.Register(ctx, "01febob@kletech.ac.in", "right-password")
				Expect(err).NotTo(HaveOccurred())

				// ACT
				account, err := accountService.Authenticate(ctx, "01febob@kletech.ac.in", "wrong-password")

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidCredentials))
				Expect(account).To(BeNil())
			})
		})

		When("the username does not exist", func() {
			It("fails with the same generic credentials error", func() {
				// ACT
				account, err := accountService.Authenticate(ctx, "01fenobody@kletech.ac.in", "whatever")

				// ASSERT
				Expect(err).To(MatchError(domain.ErrInvalidCredentials))
				Expect(account).To(BeNil())
			})
		})

		When("the credentials are valid", func() {
			It("returns the account without the password hash", func() {
				// ARRANGE
				accountID, err := accountService.Register(ctx, "01fecarol@kletech.ac.in", "secret")
				Expect(err).NotTo(HaveOccurred())

				// ACT
				account, err := accountService.Authenticate(ctx, "01feCAROL@kletech.ac.in", "secret")

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(account).NotTo(BeNil())
				Expect(account.ID).To(Equal(accountID))
				Expect(account.Username).To(Equal("01fecarol@kletech.ac.in"))
				Expect(account.Password).To(BeEmpty())
			})
		})
	})
})
