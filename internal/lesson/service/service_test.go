package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/lesson/domain"
	"github.com/drivia/drivia/internal/orgcontext"
	"github.com/drivia/drivia/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	lessons map[snowflake.ID]*domain.Lesson
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lessons: map[snowflake.ID]*domain.Lesson{}}
}

func (f *fakeRepo) Insert(ctx context.Context, db *gorm.DB, lesson *domain.Lesson) error {
	f.lessons[lesson.ID] = lesson
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok || lesson.OrgID != orgID {
		return nil, nil
	}
	copied := *lesson
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListLessonFilter, page pagination.Pagination) ([]*domain.Lesson, error) {
	var out []*domain.Lesson
	for _, lesson := range f.lessons {
		if lesson.OrgID == orgID {
			out = append(out, lesson)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, db *gorm.DB, lesson *domain.Lesson) error {
	f.lessons[lesson.ID] = lesson
	return nil
}

func (f *fakeRepo) FindOverlapping(ctx context.Context, db *gorm.DB, orgID snowflake.ID, probe domain.OverlapProbe) ([]*domain.Lesson, error) {
	var out []*domain.Lesson
	for _, lesson := range f.lessons {
		if lesson.OrgID != orgID || lesson.Status != domain.StatusScheduled || lesson.ID == probe.ExcludeID {
			continue
		}
		if !lesson.Overlaps(probe.Start, probe.End) {
			continue
		}
		shared := lesson.StudentID == probe.StudentID || lesson.InstructorID == probe.InstructorID
		if !shared && probe.VehicleID != nil && lesson.VehicleID != nil {
			shared = *lesson.VehicleID == *probe.VehicleID
		}
		if shared {
			out = append(out, lesson)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (domain.Service, *fakeRepo) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	repo := newFakeRepo()
	svc := New(Params{
		DB:    nil,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repo,
	})
	return svc, repo
}

func orgCtx() context.Context {
	return orgcontext.WithOrgID(context.Background(), snowflake.ID(7))
}

func at(hour int) time.Time {
	return time.Date(2026, time.September, 1, hour, 0, 0, 0, time.UTC)
}

func createLesson(t *testing.T, svc domain.Service, req domain.CreateLessonRequest) domain.Lesson {
	t.Helper()
	lesson, err := svc.Create(orgCtx(), req)
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return lesson
}

func TestCreateLesson(t *testing.T) {
	svc, _ := newTestService(t)

	lesson := createLesson(t, svc, domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		VehicleID:    "300",
		Kind:         "conduite",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})
	if lesson.Status != domain.StatusScheduled {
		t.Errorf("status = %q", lesson.Status)
	}
	if lesson.Kind != domain.KindDriving {
		t.Errorf("kind = %q", lesson.Kind)
	}
}

func TestCreateLessonRejectsInvalidRange(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(orgCtx(), domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		StartsAt:     at(10),
		EndsAt:       at(10),
	})
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestCreateLessonDetectsInstructorConflict(t *testing.T) {
	svc, _ := newTestService(t)

	createLesson(t, svc, domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})

	_, err := svc.Create(orgCtx(), domain.CreateLessonRequest{
		StudentID:    "101",
		InstructorID: "200",
		StartsAt:     at(9).Add(30 * time.Minute),
		EndsAt:       at(10).Add(30 * time.Minute),
	})
	if !errors.Is(err, domain.ErrScheduleConflict) {
		t.Fatalf("expected ErrScheduleConflict, got %v", err)
	}
}

func TestCreateLessonAllowsBackToBack(t *testing.T) {
	svc, _ := newTestService(t)

	createLesson(t, svc, domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})

	// [9,10) then [10,11) with the same instructor must not conflict.
	if _, err := svc.Create(orgCtx(), domain.CreateLessonRequest{
		StudentID:    "101",
		InstructorID: "200",
		StartsAt:     at(10),
		EndsAt:       at(11),
	}); err != nil {
		t.Fatalf("back-to-back lessons must be allowed: %v", err)
	}
}

func TestCreateLessonDetectsVehicleConflict(t *testing.T) {
	svc, _ := newTestService(t)

	createLesson(t, svc, domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		VehicleID:    "300",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})

	_, err := svc.Create(orgCtx(), domain.CreateLessonRequest{
		StudentID:    "101",
		InstructorID: "201",
		VehicleID:    "300",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})
	if !errors.Is(err, domain.ErrScheduleConflict) {
		t.Fatalf("expected vehicle conflict, got %v", err)
	}
}

func TestCancelledLessonFreesTheSlot(t *testing.T) {
	svc, _ := newTestService(t)

	lesson := createLesson(t, svc, domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})

	if _, err := svc.Cancel(orgCtx(), domain.GetLessonRequest{ID: lesson.ID.String()}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := svc.Create(orgCtx(), domain.CreateLessonRequest{
		StudentID:    "101",
		InstructorID: "200",
		StartsAt:     at(9),
		EndsAt:       at(10),
	}); err != nil {
		t.Fatalf("cancelled lesson must free the slot: %v", err)
	}
}

func TestRescheduleSkipsSelfConflict(t *testing.T) {
	svc, _ := newTestService(t)

	lesson := createLesson(t, svc, domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})

	newStart := at(9).Add(15 * time.Minute)
	newEnd := at(10).Add(15 * time.Minute)
	if _, err := svc.Update(orgCtx(), domain.UpdateLessonRequest{
		ID:       lesson.ID.String(),
		StartsAt: &newStart,
		EndsAt:   &newEnd,
	}); err != nil {
		t.Fatalf("rescheduling over its own slot must work: %v", err)
	}
}

func TestCreateLessonRequiresOrganization(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateLessonRequest{
		StudentID:    "100",
		InstructorID: "200",
		StartsAt:     at(9),
		EndsAt:       at(10),
	})
	if !errors.Is(err, domain.ErrInvalidOrganization) {
		t.Fatalf("expected ErrInvalidOrganization, got %v", err)
	}
}
