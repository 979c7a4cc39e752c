package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vladimiradmaev/drink-helper/internal/database/dbtest"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
)

func strPtr(s string) *string { return &s }

type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos *Repositories
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = NewRepositories(dbtest.New(s.T()))
}

func (s *RepositoryTestSuite) TestUserUpsertIsIdempotent() {
	first, err := s.repos.Users.Upsert(s.ctx, "toss-1")
	s.Require().NoError(err)
	s.Equal("toss-1", first.ID)

	weight := 70.0
	_, err = s.repos.Users.UpdateProfile(s.ctx, "toss-1", domain.ProfileUpdate{WeightKg: &weight})
	s.Require().NoError(err)

	again, err := s.repos.Users.Upsert(s.ctx, "toss-1")
	s.Require().NoError(err)
	s.Require().NotNil(again.WeightKg)
	s.Equal(70.0, *again.WeightKg)
	s.Equal(first.CreatedAt.Unix(), again.CreatedAt.Unix())
}

func (s *RepositoryTestSuite) TestUserGetByIDMissing() {
	user, err := s.repos.Users.GetByID(s.ctx, "nobody")
	s.NoError(err)
	s.Nil(user)
}

func (s *RepositoryTestSuite) TestUserUpdateProfile() {
	_, err := s.repos.Users.Upsert(s.ctx, "toss-1")
	s.Require().NoError(err)

	height := 175.0
	user, err := s.repos.Users.UpdateProfile(s.ctx, "toss-1", domain.ProfileUpdate{
		Name:     strPtr("Minji"),
		HeightCm: &height,
	})
	s.Require().NoError(err)
	s.Equal("Minji", *user.Name)
	s.Equal(175.0, *user.HeightCm)
	s.Nil(user.WeightKg)

	_, err = s.repos.Users.UpdateProfile(s.ctx, "nobody", domain.ProfileUpdate{Name: strPtr("x")})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestAccumulateMergesSameDayAndType() {
	params := domain.CreateDrinkLogParams{
		UserID: "u1", Date: "2026-10-16", DrinkType: domain.DrinkSoju, Amount: 1,
	}

	first, err := s.repos.DrinkLogs.Accumulate(s.ctx, params)
	s.Require().NoError(err)
	s.Equal(1.0, first.Amount)
	s.Equal(360.0, first.VolumeMl)

	second, err := s.repos.DrinkLogs.Accumulate(s.ctx, params)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(2.0, second.Amount)
	s.Equal(720.0, second.VolumeMl)

	logs, err := s.repos.DrinkLogs.ListByDate(s.ctx, "u1", "2026-10-16")
	s.Require().NoError(err)
	s.Len(logs, 1)
}

func (s *RepositoryTestSuite) TestAccumulateKeepsDistinctTypesAndDates() {
	for _, p := range []domain.CreateDrinkLogParams{
		{UserID: "u1", Date: "2026-10-16", DrinkType: domain.DrinkSoju, Amount: 1},
		{UserID: "u1", Date: "2026-10-16", DrinkType: domain.DrinkBeer, Amount: 2},
		{UserID: "u1", Date: "2026-10-15", DrinkType: domain.DrinkSoju, Amount: 0.5},
		{UserID: "u2", Date: "2026-10-16", DrinkType: domain.DrinkSoju, Amount: 1},
	} {
		_, err := s.repos.DrinkLogs.Accumulate(s.ctx, p)
		s.Require().NoError(err)
	}

	today, err := s.repos.DrinkLogs.ListByDate(s.ctx, "u1", "2026-10-16")
	s.Require().NoError(err)
	s.Len(today, 2)

	week, err := s.repos.DrinkLogs.ListByDateRange(s.ctx, "u1", "2026-10-11", "2026-10-16")
	s.Require().NoError(err)
	s.Require().Len(week, 3)
	s.Equal("2026-10-15", week[0].Date)
}

func (s *RepositoryTestSuite) TestAccumulateMemo() {
	params := domain.CreateDrinkLogParams{
		UserID: "u1", Date: "2026-10-16", DrinkType: domain.DrinkWine, Amount: 1, Memo: strPtr("dinner"),
	}
	_, err := s.repos.DrinkLogs.Accumulate(s.ctx, params)
	s.Require().NoError(err)

	// no memo keeps the stored one
	params.Memo = nil
	log, err := s.repos.DrinkLogs.Accumulate(s.ctx, params)
	s.Require().NoError(err)
	s.Require().NotNil(log.Memo)
	s.Equal("dinner", *log.Memo)

	// empty memo keeps it too
	params.Memo = strPtr("")
	log, err = s.repos.DrinkLogs.Accumulate(s.ctx, params)
	s.Require().NoError(err)
	s.Equal("dinner", *log.Memo)

	params.Memo = strPtr("after party")
	log, err = s.repos.DrinkLogs.Accumulate(s.ctx, params)
	s.Require().NoError(err)
	s.Equal("after party", *log.Memo)
	s.Equal(4.0, log.Amount)
}

func (s *RepositoryTestSuite) TestDrinkLogUpdateRecomputesVolume() {
	log, err := s.repos.DrinkLogs.Accumulate(s.ctx, domain.CreateDrinkLogParams{
		UserID: "u1", Date: "2026-10-16", DrinkType: domain.DrinkBeer, Amount: 1,
	})
	s.Require().NoError(err)

	amount := 3.0
	updated, err := s.repos.DrinkLogs.Update(s.ctx, "u1", log.ID, domain.DrinkLogUpdate{Amount: &amount})
	s.Require().NoError(err)
	s.Equal(3.0, updated.Amount)
	s.Equal(1500.0, updated.VolumeMl)

	_, err = s.repos.DrinkLogs.Update(s.ctx, "u2", log.ID, domain.DrinkLogUpdate{Amount: &amount})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestDrinkLogDelete() {
	log, err := s.repos.DrinkLogs.Accumulate(s.ctx, domain.CreateDrinkLogParams{
		UserID: "u1", Date: "2026-10-16", DrinkType: domain.DrinkBeer, Amount: 1,
	})
	s.Require().NoError(err)

	s.ErrorIs(s.repos.DrinkLogs.Delete(s.ctx, "u2", log.ID), domain.ErrNotFound)
	s.NoError(s.repos.DrinkLogs.Delete(s.ctx, "u1", log.ID))
	s.ErrorIs(s.repos.DrinkLogs.Delete(s.ctx, "u1", log.ID), domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestGoalCreateReplacesActiveGoalOfSameType() {
	first, err := s.repos.Goals.Create(s.ctx, domain.CreateGoalParams{
		UserID: "u1", Type: domain.GoalWeeklyLimit, TargetValue: 3, StartDate: "2026-10-11",
	})
	s.Require().NoError(err)
	s.True(first.IsActive)

	_, err = s.repos.Goals.Create(s.ctx, domain.CreateGoalParams{
		UserID: "u1", Type: domain.GoalSoberChallenge, TargetValue: 7, StartDate: "2026-10-12",
	})
	s.Require().NoError(err)

	second, err := s.repos.Goals.Create(s.ctx, domain.CreateGoalParams{
		UserID: "u1", Type: domain.GoalWeeklyLimit, TargetValue: 2, StartDate: "2026-10-16",
	})
	s.Require().NoError(err)

	active, err := s.repos.Goals.ListActive(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(active, 2)

	weekly, err := s.repos.Goals.GetActiveByType(s.ctx, "u1", domain.GoalWeeklyLimit)
	s.Require().NoError(err)
	s.Require().NotNil(weekly)
	s.Equal(second.ID, weekly.ID)
	s.Equal(2, weekly.TargetValue)
}

func (s *RepositoryTestSuite) TestGoalGetActiveByTypeMissing() {
	goal, err := s.repos.Goals.GetActiveByType(s.ctx, "u1", domain.GoalSoberChallenge)
	s.NoError(err)
	s.Nil(goal)
}

func (s *RepositoryTestSuite) TestGoalUpdateAndDeactivate() {
	goal, err := s.repos.Goals.Create(s.ctx, domain.CreateGoalParams{
		UserID: "u1", Type: domain.GoalWeeklyLimit, TargetValue: 3, StartDate: "2026-10-11",
	})
	s.Require().NoError(err)

	target := 4
	updated, err := s.repos.Goals.Update(s.ctx, "u1", goal.ID, domain.GoalUpdate{TargetValue: &target, EndDate: strPtr("2026-12-31")})
	s.Require().NoError(err)
	s.Equal(4, updated.TargetValue)
	s.Equal("2026-12-31", *updated.EndDate)

	s.ErrorIs(s.repos.Goals.Deactivate(s.ctx, "u2", goal.ID), domain.ErrNotFound)
	s.Require().NoError(s.repos.Goals.Deactivate(s.ctx, "u1", goal.ID))

	active, err := s.repos.Goals.ListActive(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(active)
}

func (s *RepositoryTestSuite) TestConsultations() {
	for _, q := range []string{"first", "second", "third"} {
		_, err := s.repos.Consultations.Create(s.ctx, domain.CreateConsultationParams{
			UserID: "u1", Question: q, Response: "answer to " + q,
		})
		s.Require().NoError(err)
	}

	latest, err := s.repos.Consultations.ListByUser(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Require().Len(latest, 2)
	s.Equal("third", latest[0].Question)
	s.Equal("second", latest[1].Question)

	now := time.Now()
	inRange, err := s.repos.Consultations.ListByCreatedRange(s.ctx, "u1", now.Add(-time.Hour), now.Add(time.Hour))
	s.Require().NoError(err)
	s.Len(inRange, 3)

	none, err := s.repos.Consultations.ListByCreatedRange(s.ctx, "u1", now.Add(-2*time.Hour), now.Add(-time.Hour))
	s.Require().NoError(err)
	s.Empty(none)

	s.ErrorIs(s.repos.Consultations.Delete(s.ctx, "u2", latest[0].ID), domain.ErrNotFound)
	s.NoError(s.repos.Consultations.Delete(s.ctx, "u1", latest[0].ID))

	all, err := s.repos.Consultations.ListByUser(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
