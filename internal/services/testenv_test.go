package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/db"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/types"
)

// testEnv wires the full service stack against an in-memory sqlite
// database, one per test.
type testEnv struct {
	db *gorm.DB

	userRepo         repos.UserRepo
	userTokenRepo    repos.UserTokenRepo
	planRepo         repos.LearningPlanRepo
	topicRepo        repos.PlanTopicRepo
	enrollmentRepo   repos.PlanEnrollmentRepo
	notificationRepo repos.NotificationRepo
	postRepo         repos.PostRepo
	commentRepo      repos.CommentRepo
	likeRepo         repos.PostLikeRepo

	auth         AuthService
	users        UserService
	plans        LearningPlanService
	topics       PlanTopicService
	enrollments  PlanEnrollmentService
	discovery    DiscoveryService
	notification NotificationService
	posts        PostService
	comments     CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := logger.NewNop()
	env := &testEnv{db: gdb}
	env.userRepo = repos.NewUserRepo(gdb, log)
	env.userTokenRepo = repos.NewUserTokenRepo(gdb, log)
	env.planRepo = repos.NewLearningPlanRepo(gdb, log)
	env.topicRepo = repos.NewPlanTopicRepo(gdb, log)
	env.enrollmentRepo = repos.NewPlanEnrollmentRepo(gdb, log)
	env.notificationRepo = repos.NewNotificationRepo(gdb, log)
	env.postRepo = repos.NewPostRepo(gdb, log)
	env.commentRepo = repos.NewCommentRepo(gdb, log)
	env.likeRepo = repos.NewPostLikeRepo(gdb, log)

	env.notification = NewNotificationService(gdb, log, env.notificationRepo, env.userRepo)
	env.auth = NewAuthService(gdb, log, env.userRepo, env.userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
	env.users = NewUserService(gdb, log, env.userRepo)
	env.plans = NewLearningPlanService(gdb, log, env.planRepo, env.topicRepo, env.enrollmentRepo)
	env.topics = NewPlanTopicService(gdb, log, env.topicRepo, env.planRepo)
	env.enrollments = NewPlanEnrollmentService(gdb, log, env.enrollmentRepo, env.planRepo, env.topicRepo, env.notification)
	env.discovery = NewDiscoveryService(gdb, log, env.planRepo, nil)
	env.posts = NewPostService(gdb, log, env.postRepo, env.commentRepo, env.likeRepo, env.notification)
	env.comments = NewCommentService(gdb, log, env.commentRepo, env.postRepo, env.notification)
	return env
}

var userSeq int

func (env *testEnv) mustCreateUser(t *testing.T) *types.User {
	t.Helper()
	userSeq++
	now := time.Now()
	user := &types.User{
		ID:        uuid.New(),
		Username:  fmt.Sprintf("user%d", userSeq),
		Email:     fmt.Sprintf("user%d@example.com", userSeq),
		Password:  "hashed",
		Role:      types.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := env.userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (env *testEnv) mustCreatePlan(t *testing.T, ownerID uuid.UUID, visibility types.Visibility, topicCount int) *types.LearningPlan {
	t.Helper()
	input := CreatePlanInput{
		Title:      "Test Plan",
		Visibility: string(visibility),
	}
	for i := 0; i < topicCount; i++ {
		input.Topics = append(input.Topics, CreateTopicInput{Title: fmt.Sprintf("Topic %d", i+1)})
	}
	plan, err := env.plans.Create(context.Background(), ownerID, input)
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return plan
}

func (env *testEnv) planByID(t *testing.T, id uuid.UUID) *types.LearningPlan {
	t.Helper()
	plan, err := env.planRepo.GetByID(context.Background(), nil, id)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	return plan
}
