// Seeds a development database with demo users, public learning plans
// and enrollments. Destructive only in the sense that it inserts; it
// never wipes existing rows.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/skillloop/skillloop-backend/internal/db"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/services"
	"github.com/skillloop/skillloop-backend/internal/types"
)

const seedUserCount = 8

func main() {
	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	theDB := pg.DB()

	userRepo := repos.NewUserRepo(theDB, log)
	planRepo := repos.NewLearningPlanRepo(theDB, log)
	topicRepo := repos.NewPlanTopicRepo(theDB, log)
	enrollmentRepo := repos.NewPlanEnrollmentRepo(theDB, log)
	notificationRepo := repos.NewNotificationRepo(theDB, log)

	notifier := services.NewNotificationService(theDB, log, notificationRepo, userRepo)
	planService := services.NewLearningPlanService(theDB, log, planRepo, topicRepo, enrollmentRepo)
	enrollmentService := services.NewPlanEnrollmentService(theDB, log, enrollmentRepo, planRepo, topicRepo, notifier)

	ctx := context.Background()

	// Users are hashed and inserted concurrently; bcrypt dominates.
	users := make([]*types.User, seedUserCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := 0; i < seedUserCount; i++ {
		i := i
		g.Go(func() error {
			hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			now := time.Now()
			user := &types.User{
				ID:        uuid.New(),
				Username:  fmt.Sprintf("learner%02d", i),
				Email:     fmt.Sprintf("learner%02d@example.com", i),
				Password:  string(hashed),
				Bio:       "Seeded demo account",
				Role:      types.RoleUser,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := userRepo.Create(gctx, nil, user); err != nil {
				return err
			}
			users[i] = user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Seeding users failed", "error", err)
	}
	log.Info("Seeded users", "count", seedUserCount)

	planInputs := []services.CreatePlanInput{
		{
			Title:       "Go for Backend Engineers",
			Description: "From syntax to production services in eight weeks.",
			Visibility:  string(types.VisibilityPublic),
			Tags:        "go,backend,web",
			Topics: []services.CreateTopicInput{
				{Title: "Syntax and tooling"},
				{Title: "Interfaces and composition"},
				{Title: "Concurrency patterns"},
				{Title: "HTTP services"},
			},
		},
		{
			Title:       "SQL Fundamentals",
			Description: "Schemas, joins and indexes from scratch.",
			Visibility:  string(types.VisibilityPublic),
			Tags:        "sql,databases",
			Topics: []services.CreateTopicInput{
				{Title: "Relational model"},
				{Title: "Joins"},
				{Title: "Indexes and query plans"},
			},
		},
		{
			Title:       "Personal Reading List",
			Description: "Private notes, not for discovery.",
			Visibility:  string(types.VisibilityPrivate),
			Tags:        "reading",
			Topics: []services.CreateTopicInput{
				{Title: "The Go Programming Language"},
			},
		},
	}

	plans := make([]*types.LearningPlan, 0, len(planInputs))
	for i, input := range planInputs {
		owner := users[i%len(users)]
		plan, err := planService.Create(ctx, owner.ID, input)
		if err != nil {
			log.Fatal("Seeding plan failed", "error", err, "title", input.Title)
		}
		plans = append(plans, plan)
	}
	log.Info("Seeded plans", "count", len(plans))

	enrolled := 0
	for _, plan := range plans {
		if plan.Visibility != types.VisibilityPublic {
			continue
		}
		for _, user := range users {
			if user.ID == plan.UserID {
				continue
			}
			if _, err := enrollmentService.Enroll(ctx, plan.ID, user.ID); err != nil {
				log.Warn("Seed enrollment failed", "error", err, "plan_id", plan.ID, "user_id", user.ID)
				continue
			}
			enrolled++
		}
	}
	log.Info("Seeded enrollments", "count", enrolled)
}
