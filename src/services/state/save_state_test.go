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
	"skillgraphpoc/src/test_artefacts/comparer"
	"skillgraphpoc/src/test_artefacts/stubs"
	"skillgraphpoc/src/test_artefacts/test_seeder"
)

var _ = Describe("SaveState validation", func() {
	It("rejects a request without userId", func() {
		// ARRANGE
		stateService := state.NewStateService(nil, nil, nil, nil, nil)

		// ACT
		err := stateService.SaveState(context.Background(), stubs.NewSaveRequestStub().Get())

		// ASSERT
		Expect(err).To(MatchError(domain.ErrMissingUserID))
	})
})

var _ = Describe("SaveState", func() {
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

		// Setup dos componentes (sem redis nem kafka: o repositório cacheado
		// degrada para consulta direta e o publisher é opcional)
		stateQueryRepository := repositories.NewStateQueryRepository(readWriteClient.GetReadPool())
		cachedStateRepository := repositories.NewCachedStateRepository(stateQueryRepository, nil)
		stateWriteRepository := repositories.NewStateWriteRepository(readWriteClient.GetWritePool(), cachedStateRepository)
		accountRepository := repositories.NewAccountRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
		stateService = state.NewStateService(cachedStateRepository, stateWriteRepository, stateQueryRepository, accountRepository, nil)
		testSeeder = test_seeder.New(readWriteClient.GetWritePool())

		// Limpar dados
		testSeeder.TruncateTables(ctx)
	})

	AfterEach(func() {
		if readWriteClient != nil {
			readWriteClient.Close()
		}
	})

	Context("when saving a full state", func() {
		When("the user saves skills, peers and resources", func() {
			It("persists every row of the graph", func() {
				// ARRANGE
				account := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &account)

				peer := domain.PeerInput{
					Name:    "Alice",
					Company: "Globex",
					Skills:  []domain.SkillRef{{Name: "Go"}, {Name: "SQL", Company: "Globex"}},
				}

				request := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithSkills(domain.SkillRef{Name: "Go", Company: "Acme"}).
					WithPeers(peer).
					WithResources(stubs.NewResource("Go", "Effective Go")).
					Get()

				// ACT
				err := stateService.SaveState(ctx, request)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				skills, err := testSeeder.SelectSkillsByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(skills).To(ContainElements(
					BeComparableTo(
						entities.Skill{UserID: account.ID, Name: "Go", Company: "Acme"},
						comparer.IgnoreFieldsFor[entities.Skill]("ID"),
					),
				))
				Expect(skills).To(HaveLen(1))

				peers, err := testSeeder.SelectPeersByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(peers).To(HaveLen(1))
				Expect(peers[0].Name).To(Equal("Alice"))

				peerSkills, err := testSeeder.SelectPeerSkillsByPeerID(ctx, peers[0].ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(peerSkills).To(HaveLen(2))
				Expect(peerSkills[0].Name).To(Equal("Go"))
				Expect(peerSkills[1].Name).To(Equal("SQL"))

				resources, err := testSeeder.SelectResourcesByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resources).To(HaveLen(1))
				Expect(resources[0].Title).To(Equal("Effective Go"))
			})
		})

		When("the profile is present in the request", func() {
			It("updates the account row", func() {
				// ARRANGE
				account := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &account)

				profile := &domain.Profile{
					Name:      "New Name",
					Meta:      "Backend Engineer",
					Companies: []string{"Initech", "Hooli"},
					Avatar:    "https://example.com/avatar.png",
				}

				request := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithProfile(profile).
					Get()

				// ACT
				err := stateService.SaveState(ctx, request)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				document, err := stateService.LoadState(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(document.Profile.Name).To(Equal("New Name"))
				Expect(document.Profile.Meta).To(Equal("Backend Engineer"))
				Expect(document.Profile.Companies).To(Equal([]string{"Initech", "Hooli"}))
				Expect(document.Profile.Avatar).To(Equal("https://example.com/avatar.png"))
			})
		})
	})

	Context("when saving over an existing state", func() {
		When("the second save carries a different graph", func() {
			It("leaves no residue from the first save", func() {
				// ARRANGE
				account := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &account)

				first := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithSkills(domain.SkillRef{Name: "Go"}, domain.SkillRef{Name: "Rust"}).
					WithPeers(domain.PeerInput{Name: "Alice", Skills: []domain.SkillRef{{Name: "Go"}}}).
					WithResources(stubs.NewResource("Go", "Effective Go")).
					Get()
				Expect(stateService.SaveState(ctx, first)).To(Succeed())

				second := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithSkills(domain.SkillRef{Name: "Python"}).
					WithPeers().
					WithResources().
					Get()

				// ACT
				err := stateService.SaveState(ctx, second)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				skills, err := testSeeder.SelectSkillsByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(skills).To(HaveLen(1))
				Expect(skills[0].Name).To(Equal("Python"))

				peers, err := testSeeder.SelectPeersByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(peers).To(BeEmpty())

				resources, err := testSeeder.SelectResourcesByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resources).To(BeEmpty())
			})
		})

		When("the same payload is saved twice", func() {
			It("keeps the row counts stable", func() {
				// ARRANGE
				account := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &account)

				request := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithSkills(domain.SkillRef{Name: "Go"}).
					WithPeers(domain.PeerInput{Name: "Alice", Skills: []domain.SkillRef{{Name: "Go"}}}).
					WithResources(stubs.NewResource("Go", "Effective Go")).
					Get()

				// ACT
				Expect(stateService.SaveState(ctx, request)).To(Succeed())
				Expect(stateService.SaveState(ctx, request)).To(Succeed())

				// ASSERT
				skills, err := testSeeder.SelectSkillsByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(skills).To(HaveLen(1))

				peers, err := testSeeder.SelectPeersByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(peers).To(HaveLen(1))

				resources, err := testSeeder.SelectResourcesByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resources).To(HaveLen(1))
			})
		})

		When("the payload is empty", func() {
			It("clears the whole graph", func() {
				// ARRANGE
				account := stubs.NewAccountStub().Get()
				testSeeder.InsertAccount(ctx, &account)

				seeded := stubs.NewSaveRequestStub().
					WithUserID(account.ID).
					WithSkills(domain.SkillRef{Name: "Go"}).
					WithResources(stubs.NewResource("Go", "Effective Go")).
					Get()
				Expect(stateService.SaveState(ctx, seeded)).To(Succeed())

				empty := domain.SaveStateRequest{UserID: account.ID}

				// ACT
				err := stateService.SaveState(ctx, empty)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				skills, err := testSeeder.SelectSkillsByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(skills).To(BeEmpty())

				resources, err := testSeeder.SelectResourcesByUserID(ctx, account.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resources).To(BeEmpty())
			})
		})
	})
})
