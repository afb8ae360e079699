package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cafeoi/cafeoi-backend/internal/logger"
	"github.com/cafeoi/cafeoi-backend/internal/plangen"
	"github.com/cafeoi/cafeoi-backend/internal/repos"
	"github.com/cafeoi/cafeoi-backend/internal/requestdata"
	"github.com/cafeoi/cafeoi-backend/internal/types"
)

var testSubmission = plangen.Submission{
	Problem:    "Freelancers spend too long drafting proposals",
	TargetUser: "Freelance designers and developers",
	Solution:   "An AI assistant that auto-generates proposal PDFs",
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestService(t *testing.T) (PlanService, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&types.Profile{}, &types.Idea{}, &types.AIPlan{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := testLogger()
	svc := NewPlanService(
		gdb,
		log,
		repos.NewProfileRepo(gdb, log),
		repos.NewIdeaRepo(gdb, log),
		repos.NewAIPlanRepo(gdb, log),
	)
	return svc, gdb
}

func TestPersistThenFetchRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	plan := svc.GeneratePlan(testSubmission)
	rd := &requestdata.RequestData{Email: "ada@cafeoi.local", FullName: "Ada Lovelace"}

	persisted, message := svc.Persist(ctx, testSubmission, plan, rd)
	if !persisted {
		t.Fatalf("persist failed: %s", message)
	}
	if message != MsgPlanPersisted {
		t.Fatalf("persist message: got=%q want=%q", message, MsgPlanPersisted)
	}

	items, _, err := svc.FetchRecent(ctx, DefaultHistoryLimit)
	if err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if got := len(items); got != 1 {
		t.Fatalf("history items: got=%d want=1", got)
	}

	item := items[0]
	if item.Problem != testSubmission.Problem {
		t.Fatalf("problem round trip: got=%q want=%q", item.Problem, testSubmission.Problem)
	}
	if item.TargetUser != testSubmission.TargetUser {
		t.Fatalf("target user round trip: got=%q want=%q", item.TargetUser, testSubmission.TargetUser)
	}
	if item.Solution != testSubmission.Solution {
		t.Fatalf("solution round trip: got=%q want=%q", item.Solution, testSubmission.Solution)
	}
	if item.Plan == nil {
		t.Fatalf("history item has no plan")
	}
	if item.Plan.Summary != plan.Summary {
		t.Fatalf("summary round trip: got=%q want=%q", item.Plan.Summary, plan.Summary)
	}
	if got := len(item.Plan.Architecture); got != len(plan.Architecture) {
		t.Fatalf("architecture round trip: got=%d entries want=%d", got, len(plan.Architecture))
	}
	if got := len(item.Plan.DatabaseSchema); got != len(plan.DatabaseSchema) {
		t.Fatalf("schema round trip: got=%d entries want=%d", got, len(plan.DatabaseSchema))
	}
}

func TestPersistReusesProfileForSameEmail(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	plan := svc.GeneratePlan(testSubmission)
	rd := &requestdata.RequestData{Email: "ada@cafeoi.local"}

	for i := 0; i < 2; i++ {
		if persisted, message := svc.Persist(ctx, testSubmission, plan, rd); !persisted {
			t.Fatalf("persist %d failed: %s", i, message)
		}
	}

	var profiles, ideas int64
	if err := gdb.Model(&types.Profile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if err := gdb.Model(&types.Idea{}).Count(&ideas).Error; err != nil {
		t.Fatalf("count ideas: %v", err)
	}
	if profiles != 1 {
		t.Fatalf("profile rows: got=%d want=1", profiles)
	}
	if ideas != 2 {
		t.Fatalf("idea rows: got=%d want=2", ideas)
	}
}

func TestPersistDefaultsIdentityWhenMetadataMissing(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	plan := svc.GeneratePlan(testSubmission)
	if persisted, message := svc.Persist(ctx, testSubmission, plan, nil); !persisted {
		t.Fatalf("persist failed: %s", message)
	}

	var profile types.Profile
	if err := gdb.First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.Email != requestdata.DefaultEmail {
		t.Fatalf("profile email: got=%q want=%q", profile.Email, requestdata.DefaultEmail)
	}
	if profile.FullName != requestdata.DefaultFullName {
		t.Fatalf("profile full name: got=%q want=%q", profile.FullName, requestdata.DefaultFullName)
	}
}

func TestPersistPlanFailureLeavesIdeaBehind(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	plan := svc.GeneratePlan(testSubmission)

	// force step 3 to fail while steps 1 and 2 still succeed
	if err := gdb.Migrator().DropTable(&types.AIPlan{}); err != nil {
		t.Fatalf("drop ai_plans: %v", err)
	}

	persisted, message := svc.Persist(ctx, testSubmission, plan, nil)
	if persisted {
		t.Fatalf("persist reported success with ai_plans missing")
	}
	if !strings.Contains(message, "could not save plan") {
		t.Fatalf("persist message: got=%q", message)
	}

	var ideas int64
	if err := gdb.Model(&types.Idea{}).Count(&ideas).Error; err != nil {
		t.Fatalf("count ideas: %v", err)
	}
	if ideas != 1 {
		t.Fatalf("idea rows after partial failure: got=%d want=1", ideas)
	}

	// history still serves the plan-less idea once the table is back
	if err := gdb.AutoMigrate(&types.AIPlan{}); err != nil {
		t.Fatalf("recreate ai_plans: %v", err)
	}
	items, _, err := svc.FetchRecent(ctx, DefaultHistoryLimit)
	if err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if got := len(items); got != 1 {
		t.Fatalf("history items: got=%d want=1", got)
	}
	if items[0].Plan != nil {
		t.Fatalf("expected plan-less history item, got plan %+v", items[0].Plan)
	}
}

func TestFetchRecentEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	items, message, err := svc.FetchRecent(context.Background(), DefaultHistoryLimit)
	if err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items on empty store: got=%d want=0", len(items))
	}
	if message != MsgHistoryEmpty {
		t.Fatalf("empty-store message: got=%q want=%q", message, MsgHistoryEmpty)
	}
}

func TestFetchRecentLimitExcludesOlderIdeas(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		sub := testSubmission
		sub.Problem = fmt.Sprintf("numbered problem %02d for history", i)
		plan := svc.GeneratePlan(sub)
		if persisted, message := svc.Persist(ctx, sub, plan, nil); !persisted {
			t.Fatalf("persist %d failed: %s", i, message)
		}
	}

	items, _, err := svc.FetchRecent(ctx, DefaultHistoryLimit)
	if err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if got := len(items); got != DefaultHistoryLimit {
		t.Fatalf("history items: got=%d want=%d", got, DefaultHistoryLimit)
	}
	if items[0].Problem != "numbered problem 10 for history" {
		t.Fatalf("newest idea first: got=%q", items[0].Problem)
	}
	for _, item := range items {
		if item.Problem == "numbered problem 00 for history" {
			t.Fatalf("11th oldest idea appeared in history")
		}
	}
}

func TestStoreConfigured(t *testing.T) {
	configured, _ := newTestService(t)
	if !configured.StoreConfigured() {
		t.Fatalf("service with a db reports unconfigured")
	}

	log := testLogger()
	unconfigured := NewPlanService(nil, log, nil, nil, nil)
	if unconfigured.StoreConfigured() {
		t.Fatalf("service without a db reports configured")
	}
}
