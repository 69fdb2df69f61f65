// Package store holds the two persisted aggregates of the coaching domain:
// the user profile and the trainer conversations. Both keep their state in
// memory as the source of truth and trail writes to the storage port;
// persistence failures are logged, never surfaced to callers.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/nutrition"
	"github.com/JunaidParamberi/MacroMateBack/internal/storage"
)

const profileStateName = "user_profile"

// ProfileStore owns the single user profile aggregate. All reads and writes
// funnel through it; the UI layer never keeps a private copy.
type ProfileStore struct {
	mu          sync.Mutex
	blobs       storage.BlobStore
	profile     models.UserProfile
	hydrated    bool
	subscribers []func(models.UserProfile)
}

// DefaultProfile returns the seed state of a fresh install. Derived fields
// carry example values rather than zeroes so review screens render something
// sensible before the first recalculation.
func DefaultProfile() models.UserProfile {
	return models.UserProfile{
		CurrentWeight:      75,
		WeightUnit:         models.WeightUnitKg,
		Height:             175,
		HeightUnit:         models.HeightUnitCm,
		BMI:                24.5,
		BMICategory:        models.BMINormal,
		Allergies:          []string{"none"},
		TargetWeight:       70,
		WeeklyPace:         models.PaceModerate,
		DailyCalorieTarget: 2450,
		ProteinTarget:      184,
		CarbsTarget:        245,
		FatsTarget:         82,
		Notifications: models.NotificationPreferences{
			MealReminders:   true,
			WaterReminders:  true,
			ProgressUpdates: true,
		},
	}
}

// NewProfileStore hydrates the profile from the blob store, falling back to
// seed defaults on first launch or on a snapshot that no longer parses.
func NewProfileStore(ctx context.Context, blobs storage.BlobStore) *ProfileStore {
	s := &ProfileStore{
		blobs:   blobs,
		profile: DefaultProfile(),
	}

	data, err := blobs.Load(ctx, profileStateName)
	switch {
	case err == nil:
		var loaded models.UserProfile
		if unmarshalErr := json.Unmarshal(data, &loaded); unmarshalErr != nil {
			logrus.WithError(unmarshalErr).Warn("user profile snapshot unreadable, using defaults")
		} else {
			s.profile = loaded
		}
		s.hydrated = true
	case errors.Is(err, storage.ErrNotFound):
		s.hydrated = true
	default:
		logrus.WithError(err).Warn("user profile load failed, using defaults")
	}

	return s
}

func (s *ProfileStore) Get() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Hydrated reports whether the on-disk snapshot was consulted, regardless of
// whether one existed.
func (s *ProfileStore) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Subscribe registers a listener invoked with a snapshot after every
// mutation. Listeners run outside the store lock.
func (s *ProfileStore) Subscribe(fn func(models.UserProfile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Update applies a partial mutation; nil fields keep their current value.
// Values are assigned as given — range checks live at the API boundary, not
// here.
func (s *ProfileStore) Update(ctx context.Context, upd models.ProfileUpdate) models.UserProfile {
	s.mu.Lock()

	p := &s.profile
	if upd.HasCompletedOnboarding != nil {
		p.HasCompletedOnboarding = *upd.HasCompletedOnboarding
	}
	if upd.PrimaryGoal != nil {
		p.PrimaryGoal = upd.PrimaryGoal
	}
	if upd.CurrentWeight != nil {
		p.CurrentWeight = *upd.CurrentWeight
	}
	if upd.WeightUnit != nil {
		p.WeightUnit = *upd.WeightUnit
	}
	if upd.Height != nil {
		p.Height = *upd.Height
	}
	if upd.HeightUnit != nil {
		p.HeightUnit = *upd.HeightUnit
	}
	if upd.ActivityLevel != nil {
		p.ActivityLevel = upd.ActivityLevel
	}
	if upd.BiologicalSex != nil {
		p.BiologicalSex = upd.BiologicalSex
	}
	if upd.DateOfBirth != nil {
		p.DateOfBirth = upd.DateOfBirth
	}
	if upd.BodyFatRange != nil {
		p.BodyFatRange = upd.BodyFatRange
	}
	if upd.Lifestyle != nil {
		p.Lifestyle = upd.Lifestyle
	}
	if upd.Allergies != nil {
		p.Allergies = append([]string(nil), (*upd.Allergies)...)
	}
	if upd.DietPreferences != nil {
		p.DietPreferences = *upd.DietPreferences
	}
	if upd.MealPlan != nil {
		p.MealPlan = upd.MealPlan
	}
	if upd.TargetWeight != nil {
		p.TargetWeight = *upd.TargetWeight
	}
	if upd.WeeklyPace != nil {
		p.WeeklyPace = *upd.WeeklyPace
	}
	if upd.LifeEvent != nil {
		p.LifeEvent = upd.LifeEvent
	}
	if upd.Notifications != nil {
		p.Notifications = *upd.Notifications
	}
	if upd.StreakDays != nil {
		p.StreakDays = *upd.StreakDays
	}

	return s.commit(ctx)
}

// CalculateBMI recomputes bmi/bmiCategory from the current weight and
// height. Triggered explicitly by screens after weight or height changes.
func (s *ProfileStore) CalculateBMI(ctx context.Context) models.UserProfile {
	s.mu.Lock()

	bmi, category := nutrition.ComputeBMI(s.profile.CurrentWeight, s.profile.WeightUnit, s.profile.Height)
	s.profile.BMI = bmi
	s.profile.BMICategory = category

	return s.commit(ctx)
}

// CalculateNutritionTargets recomputes the calorie/macro targets and the
// goal projection in one operation. When biological sex, activity level, or
// date of birth is missing the whole recomputation is skipped and the
// previous derived values stay in place.
func (s *ProfileStore) CalculateNutritionTargets(ctx context.Context) models.UserProfile {
	s.mu.Lock()

	now := time.Now()
	targets, ok := nutrition.ComputeTargets(&s.profile, now)
	if !ok {
		defer s.mu.Unlock()
		return s.profile.Clone()
	}

	proj := nutrition.ComputeProjection(s.profile.CurrentWeight, s.profile.TargetWeight, s.profile.WeightUnit, s.profile.WeeklyPace, now)

	s.profile.DailyCalorieTarget = targets.Calories
	s.profile.ProteinTarget = targets.ProteinG
	s.profile.CarbsTarget = targets.CarbsG
	s.profile.FatsTarget = targets.FatsG
	s.profile.ProjectedMilestone = proj.Milestone
	goalDate := proj.EstimatedGoalDate
	s.profile.EstimatedGoalDate = &goalDate

	return s.commit(ctx)
}

// Reset restores the seeded defaults, discarding every answer and derived
// value.
func (s *ProfileStore) Reset(ctx context.Context) models.UserProfile {
	s.mu.Lock()
	s.profile = DefaultProfile()
	return s.commit(ctx)
}

// commit persists the profile, snapshots it, releases the lock, and fans the
// snapshot out to subscribers. Callers must hold the lock.
func (s *ProfileStore) commit(ctx context.Context) models.UserProfile {
	s.persistLocked(ctx)
	snapshot := s.profile.Clone()
	subscribers := append(([]func(models.UserProfile))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot.Clone())
	}
	return snapshot
}

func (s *ProfileStore) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.profile)
	if err != nil {
		logrus.WithError(err).Error("marshal user profile")
		return
	}
	if err := s.blobs.Save(ctx, profileStateName, data); err != nil {
		logrus.WithError(err).Warn("persist user profile")
	}
}
