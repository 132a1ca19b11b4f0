package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

var testUserSeq int

func newTestDB(t *testing.T) *DatabaseService {
	t.Helper()

	db := &DatabaseService{
		driver:   "sqlite",
		database: ":memory:",
	}
	require.NoError(t, db.Start())
	t.Cleanup(db.Shutdown)

	return db
}

func newTestUserService(t *testing.T, db *DatabaseService) *UserService {
	t.Helper()
	return &UserService{sqlSvc: db}
}

func newTestStudyService(t *testing.T, db *DatabaseService) *StudyService {
	t.Helper()
	return &StudyService{
		sqlSvc:  db,
		userSvc: newTestUserService(t, db),
	}
}

// createTestUser registers an account on the given plan and returns it.
func createTestUser(t *testing.T, db *DatabaseService, plan string) *model.User {
	t.Helper()

	testUserSeq++
	user, err := db.Users().CreateUser(dto.RegisterRequest{
		FirstName:   "Wanjiku",
		LastName:    "Kamau",
		Email:       fmt.Sprintf("student%d@example.com", testUserSeq),
		Password:    "SecurePass123",
		PhoneNumber: "254712345678",
		School:      "Alliance High School",
	})
	require.NoError(t, err)

	if plan != shared.PlanFree {
		sub, err := db.Users().GetSubscription(user.ID)
		require.NoError(t, err)
		sub.Plan = plan
		require.NoError(t, db.Users().UpdateSubscription(sub))
	}

	return user
}
