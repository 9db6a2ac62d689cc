//go:build datagen_postgres
// +build datagen_postgres

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"skillgraphpoc/src/helper/env"
	"skillgraphpoc/src/infra/postgres"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Gerador de massa para testes de carga:
//
//	go run -tags datagen_postgres datagen_postgres.go -users 10000 -batch 500
//
// Cada conta recebe um grafo aleatório de skills, peers e resources; uma
// fração dos peers é linkada a contas já geradas para produzir pares mútuos.

var skillPool = []string{
	"Go", "Python", "Rust", "TypeScript", "SQL", "Kafka",
	"Redis", "Postgres", "Docker", "Kubernetes", "Terraform", "React",
}

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_WRITE_HOST")
	dbPort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := 100
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	totalUsers := flag.Int("users", 1000, "quantidade de contas a gerar")
	batchSize := flag.Int("batch", 200, "contas por transação")
	flag.Parse()

	pool, err := newSQLClient()
	if err != nil {
		log.Fatalf("datagen - failed to connect: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		log.Println("datagen - shutdown signal received")
		cancel()
	}()

	// Todas as contas geradas compartilham o mesmo hash; o datagen não testa
	// login, só volume.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("datagen"), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("datagen - failed to hash password: %v", err)
	}

	var generated atomic.Int64
	var accountIDs []int64
	start := time.Now()

	for generated.Load() < int64(*totalUsers) && ctx.Err() == nil {
		remaining := int(int64(*totalUsers) - generated.Load())
		size := *batchSize
		if remaining < size {
			size = remaining
		}

		ids, err := seedBatch(ctx, pool, size, string(passwordHash), accountIDs)
		if err != nil {
			log.Fatalf("datagen - batch failed: %v", err)
		}

		accountIDs = append(accountIDs, ids...)
		generated.Add(int64(len(ids)))
		log.Printf("datagen - %d/%d contas geradas", generated.Load(), *totalUsers)
	}

	log.Printf("datagen - done: %d contas em %s", generated.Load(), time.Since(start).Round(time.Millisecond))
}

func seedBatch(ctx context.Context, pool *pgxpool.Pool, size int, passwordHash string, existingIDs []int64) ([]int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]int64, 0, size)

	for i := 0; i < size; i++ {
		accountID, err := seedAccount(ctx, tx, passwordHash, existingIDs)
		if err != nil {
			return nil, err
		}
		ids = append(ids, accountID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func seedAccount(ctx context.Context, tx pgx.Tx, passwordHash string, existingIDs []int64) (int64, error) {
	username := fmt.Sprintf("01fe%s@kletech.ac.in", gofakeit.LetterN(10))
	companies, _ := json.Marshal([]string{gofakeit.Company()})

	var accountID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, password, name, meta, company, avatar)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		username, passwordHash, gofakeit.Name(), gofakeit.JobTitle(), string(companies), gofakeit.URL(),
	).Scan(&accountID)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	skillRows := make([][]any, 0, 4)
	for i := 0; i < 1+rand.Intn(4); i++ {
		skillRows = append(skillRows, []any{accountID, randomSkill(), gofakeit.Company()})
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"skills"}, []string{"user_id", "skill", "company"}, pgx.CopyFromRows(skillRows))
	if err != nil {
		return 0, fmt.Errorf("copy skills: %w", err)
	}

	for i := 0; i < rand.Intn(3); i++ {
		var linkedAccountID any
		// ~50% dos peers linkam uma conta existente; alguns pares saem mútuos.
		if len(existingIDs) > 0 && rand.Intn(2) == 0 {
			linkedAccountID = existingIDs[rand.Intn(len(existingIDs))]
		}

		var peerID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO peers (user_id, name, company, linked_account_id)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			accountID, gofakeit.Name(), gofakeit.Company(), linkedAccountID,
		).Scan(&peerID)
		if err != nil {
			return 0, fmt.Errorf("insert peer: %w", err)
		}

		_, err = tx.Exec(ctx, `INSERT INTO peer_skills (peer_id, skill, company) VALUES ($1, $2, $3)`,
			peerID, randomSkill(), gofakeit.Company())
		if err != nil {
			return 0, fmt.Errorf("insert peer skill: %w", err)
		}
	}

	resourceRows := make([][]any, 0, 3)
	for i := 0; i < rand.Intn(4); i++ {
		resourceRows = append(resourceRows, []any{
			accountID, randomSkill(), gofakeit.BookTitle(), gofakeit.URL(), gofakeit.Sentence(8), gofakeit.Name(),
		})
	}
	if len(resourceRows) > 0 {
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"resources"},
			[]string{"user_id", "skill", "title", "url", "note", "author"}, pgx.CopyFromRows(resourceRows))
		if err != nil {
			return 0, fmt.Errorf("copy resources: %w", err)
		}
	}

	return accountID, nil
}

func randomSkill() string {
	return skillPool[rand.Intn(len(skillPool))]
}
