package state_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/domain/entities"
	"skillgraphpoc/src/helper/env"
	"skillgraphpoc/src/infra/postgres"
	"skillgraphpoc/src/repositories"
	"skillgraphpoc/src/services/state"
	"skillgraphpoc/src/test_artefacts/stubs"
	"skillgraphpoc/src/test_artefacts/test_seeder"
)

var _ = Describe("LoadState", func() {
	var (
		readWriteClient *postgres.ReadWriteClient
		testSeeder      test_seeder.TestSeeder
		stateService    *state.StateService
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

		stateQueryRepository := repositories.NewStateQueryRepository(readWriteClient.GetReadPool())
		cachedStateRepository := repositories.NewCachedStateRepository(stateQueryRepository, nil)
		stateWriteRepository := repositories.NewStateWriteRepository(readWriteClient.GetWritePool(), cachedStateRepository)
		accountRepository := repositories.NewAccountRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
		stateService = state.NewStateService(cachedStateRepository, stateWriteRepository, stateQueryRepository, accountRepository, nil)
		testSeeder = test_seeder.New(readWriteClient.GetWritePool())

		testSeeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if readWriteClient != nil {
			readWriteClient.Close()
		}
	})

	Context("when the account has no saved state", func() {
		When("loading an account id that does not exist", func() {
			It("returns the default empty document", func() {
				// ACT
				document, err := stateService.LoadState(ctx, 424242)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Profile).To(Equal(domain.Profile{Companies: []string{}}))
				Expect(document.MySkills).To(BeEmpty())
				Expect(document.Peers).To(BeEmpty())
				Expect(document.Resources).To(BeEmpty())
			})
		})
	})

	Context("when the stored profile is degraded", func() {
		When("the company column holds a value that is not JSON", func() {
			It("falls back to a single raw entry", func() {
				// ARRANGE
				account := stubs.NewAccountStub().WithCompany("Globex Corp").Get()
				testSeeder.InsertAccount(ctx, &account)

				// ACT
				document, err := stateService.LoadState(ctx, account.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Profile.Companies).To(Equal([]string{"Globex Corp"}))
			})
		})

		When("the company column is empty", func() {
			It("falls back to an empty list", func() {
				// ARRANGE
				account := stubs.NewAccountStub().WithCompany("").Get()
				testSeeder.InsertAccount(ctx, &account)

				// ACT
				document, err := stateService.LoadState(ctx, account.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Profile.Companies).To(Equal([]string{}))
			})
		})
	})

	Context("when resolving shared resources", func() {
		var (
			accountA entities.Account
			accountB entities.Account
		)

		BeforeEach(func() {
			accountA = stubs.NewAccountStub().Get()
			accountB = stubs.NewAccountStub().Get()
			testSeeder.InsertAccount(ctx, &accountA)
			testSeeder.InsertAccount(ctx, &accountB)
		})

		When("only one side links the other", func() {
			It("does not share any resources", func() {
				// ARRANGE: A aponta para B, B não aponta de volta
				saveA := stubs.NewSaveRequestStub().
					WithUserID(accountA.ID).
					WithPeers(stubs.NewLinkedPeer("Bob", accountB.ID)).
					WithResources().
					Get()
				Expect(stateService.SaveState(ctx, saveA)).To(Succeed())

				saveB := stubs.NewSaveRequestStub().
					WithUserID(accountB.ID).
					WithResources(stubs.NewResource("Go", "Concurrency in Go")).
					Get()
				Expect(stateService.SaveState(ctx, saveB)).To(Succeed())

				// ACT
				document, err := stateService.LoadState(ctx, accountA.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Resources).To(BeEmpty())
			})
		})

		When("both sides link each other", func() {
			It("merges the peer resources into the document", func() {
				// ARRANGE: A <-> B
				saveA := stubs.NewSaveRequestStub().
					WithUserID(accountA.ID).
					WithPeers(stubs.NewLinkedPeer("Bob", accountB.ID)).
					WithResources(stubs.NewResource("Go", "Effective Go")).
					Get()
				Expect(stateService.SaveState(ctx, saveA)).To(Succeed())

				saveB := stubs.NewSaveRequestStub().
					WithUserID(accountB.ID).
					WithPeers(stubs.NewLinkedPeer("Alice", accountA.ID)).
					WithResources(stubs.NewResource("Go", "Concurrency in Go")).
					Get()
				Expect(stateService.SaveState(ctx, saveB)).To(Succeed())

				// ACT
				document, err := stateService.LoadState(ctx, accountA.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				titles := make([]string, 0, len(document.Resources))
				for _, resource := range document.Resources {
					titles = append(titles, resource.Title)
				}
				Expect(titles).To(Equal([]string{"Effective Go", "Concurrency in Go"}))

				// O outro lado também enxerga a mescla
				documentB, err := stateService.LoadState(ctx, accountB.ID)
				Expect(err).NotTo(HaveOccurred())

				titlesB := make([]string, 0, len(documentB.Resources))
				for _, resource := range documentB.Resources {
					titlesB = append(titlesB, resource.Title)
				}
				Expect(titlesB).To(Equal([]string{"Concurrency in Go", "Effective Go"}))
			})
		})

		When("sharing goes through an intermediate account", func() {
			It("does not leak the third account's resources", func() {
				// ARRANGE: X <-> Y e Y <-> Z, mas X nunca linkou Z
				accountZ := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &accountZ)

				saveX := stubs.NewSaveRequestStub().
					WithUserID(accountA.ID).
					WithPeers(stubs.NewLinkedPeer("Y", accountB.ID)).
					WithResources().
					Get()
				Expect(stateService.SaveState(ctx, saveX)).To(Succeed())

				saveY := stubs.NewSaveRequestStub().
					WithUserID(accountB.ID).
					WithPeers(stubs.NewLinkedPeer("X", accountA.ID), stubs.NewLinkedPeer("Z", accountZ.ID)).
					WithResources(stubs.NewResource("Go", "Y Resource")).
					Get()
				Expect(stateService.SaveState(ctx, saveY)).To(Succeed())

				saveZ := stubs.NewSaveRequestStub().
					WithUserID(accountZ.ID).
					WithPeers(stubs.NewLinkedPeer("Y", accountB.ID)).
					WithResources(stubs.NewResource("Go", "Z Resource")).
					Get()
				Expect(stateService.SaveState(ctx, saveZ)).To(Succeed())

				// ACT
				document, err := stateService.LoadState(ctx, accountA.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Resources).To(HaveLen(1))
				Expect(document.Resources[0].Title).To(Equal("Y Resource"))
			})
		})

		When("the linked peer is not in the first position", func() {
			It("rewrites the shared peerIndex to the linked peer's position", func() {
				// ARRANGE: o peer linkado a B é o segundo da lista de A
				unlinked := domain.PeerInput{Name: "Carol", Company: "Initech", Skills: []domain.SkillRef{}}

				saveA := stubs.NewSaveRequestStub().
					WithUserID(accountA.ID).
					WithPeers(unlinked, stubs.NewLinkedPeer("Bob", accountB.ID)).
					WithResources().
					Get()
				Expect(stateService.SaveState(ctx, saveA)).To(Succeed())

				saveB := stubs.NewSaveRequestStub().
					WithUserID(accountB.ID).
					WithPeers(stubs.NewLinkedPeer("Alice", accountA.ID)).
					WithResources(stubs.NewResource("Go", "Concurrency in Go")).
					Get()
				Expect(stateService.SaveState(ctx, saveB)).To(Succeed())

				// ACT
				document, err := stateService.LoadState(ctx, accountA.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Resources).To(HaveLen(1))
				Expect(document.Resources[0].PeerIndex).NotTo(BeNil())
				Expect(*document.Resources[0].PeerIndex).To(Equal(1))
			})
		})

		When("the user has own resources with a stored peer index", func() {
			It("keeps the stored index untouched", func() {
				// ARRANGE
				ownResource := stubs.NewResource("Go", "Effective Go")
				index := 0
				ownResource.PeerIndex = &index

				saveA := stubs.NewSaveRequestStub().
					WithUserID(accountA.ID).
					WithPeers(domain.PeerInput{Name: "Carol", Skills: []domain.SkillRef{}}).
					WithResources(ownResource).
					Get()
				Expect(stateService.SaveState(ctx, saveA)).To(Succeed())

				// ACT
				document, err := stateService.LoadState(ctx, accountA.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Resources).To(HaveLen(1))
				Expect(document.Resources[0].PeerIndex).NotTo(BeNil())
				Expect(*document.Resources[0].PeerIndex).To(Equal(0))
			})
		})
	})

	Context("when listing peers", func() {
		When("a peer carries its own skills", func() {
			It("returns peers in save order with their skills", func() {
				// ARRANGE
				account := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &account)

				save := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithPeers(
						domain.PeerInput{Name: "Alice", Skills: []domain.SkillRef{{Name: "Go"}}},
						domain.PeerInput{Name: "Bob", Skills: []domain.SkillRef{{Name: "Rust", Company: "Acme"}}},
					).
					Get()
				Expect(stateService.SaveState(ctx, save)).To(Succeed())

				// ACT
				document, err := stateService.LoadState(ctx, account.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Peers).To(HaveLen(2))
				Expect(document.Peers[0].Name).To(Equal("Alice"))
				Expect(document.Peers[0].Skills).To(Equal([]domain.SkillRef{{Name: "Go"}}))
				Expect(document.Peers[1].Name).To(Equal("Bob"))
				Expect(document.Peers[1].Skills).To(Equal([]domain.SkillRef{{Name: "Rust", Company: "Acme"}}))
			})
		})
	})
})
