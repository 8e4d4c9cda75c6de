package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"campdir/internal/common"
	"campdir/internal/domain/model"
	"campdir/internal/domain/repository"

	"github.com/google/uuid"
)

type CourseService struct {
	courseRepo   repository.CourseRepository
	bootcampRepo repository.BootcampRepository
}

func NewCourseService(courseRepo repository.CourseRepository, bootcampRepo repository.BootcampRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, bootcampRepo: bootcampRepo}
}

type CreateCourseRequest struct {
	Title                 string  `json:"title"`
	Description           string  `json:"description"`
	Weeks                 string  `json:"weeks"`
	Tuition               float64 `json:"tuition"`
	MinimumSkill          string  `json:"minimumSkill"`
	ScholarshipsAvailable bool    `json:"scholarshipsAvailable"`
}

type UpdateCourseRequest struct {
	Title                 *string  `json:"title,omitempty"`
	Description           *string  `json:"description,omitempty"`
	Weeks                 *string  `json:"weeks,omitempty"`
	Tuition               *float64 `json:"tuition,omitempty"`
	MinimumSkill          *string  `json:"minimumSkill,omitempty"`
	ScholarshipsAvailable *bool    `json:"scholarshipsAvailable,omitempty"`
}

func (s *CourseService) List(ctx context.Context, q *repository.ListQuery) ([]model.CourseWithBootcamp, *repository.Pagination, error) {
	courses, pagination, err := s.courseRepo.List(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	joined, err := s.withBootcamps(ctx, courses)
	if err != nil {
		return nil, nil, err
	}
	return joined, pagination, nil
}

func (s *CourseService) ListForBootcamp(ctx context.Context, bootcampID string) ([]model.Course, error) {
	if _, err := s.bootcampRepo.FindByID(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListByBootcamp(ctx, bootcampID)
}

func (s *CourseService) Get(ctx context.Context, id string) (*model.CourseWithBootcamp, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	joined, err := s.withBootcamps(ctx, []model.Course{*course})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// withBootcamps embeds each course's parent bootcamp summary, fetching
// every distinct parent once.
func (s *CourseService) withBootcamps(ctx context.Context, courses []model.Course) ([]model.CourseWithBootcamp, error) {
	summaries := make(map[string]*model.BootcampSummary, len(courses))
	joined := make([]model.CourseWithBootcamp, 0, len(courses))
	for _, course := range courses {
		summary, seen := summaries[course.BootcampID]
		if !seen {
			bootcamp, err := s.bootcampRepo.FindByID(ctx, course.BootcampID)
			switch {
			case err == nil:
				summary = &model.BootcampSummary{
					ID:          bootcamp.ID,
					Name:        bootcamp.Name,
					Description: bootcamp.Description,
				}
			case errors.Is(err, common.ErrNotFound):
				// orphaned course; serialize a null bootcamp
			default:
				return nil, err
			}
			summaries[course.BootcampID] = summary
		}
		joined = append(joined, model.CourseWithBootcamp{Course: course, Bootcamp: summary})
	}
	return joined, nil
}

func (s *CourseService) Create(ctx context.Context, identity Identity, bootcampID string, req CreateCourseRequest) (*model.Course, error) {
	bootcamp, err := s.bootcampRepo.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if !CanModify(identity, bootcamp.UserID) {
		return nil, common.Errorf("User %s is not authorized to add a course to bootcamp %s: %w", identity.UserID, bootcampID, common.ErrForbidden)
	}

	now := time.Now()
	course := &model.Course{
		ID:                    uuid.NewString(),
		Title:                 req.Title,
		Description:           req.Description,
		Weeks:                 req.Weeks,
		Tuition:               req.Tuition,
		MinimumSkill:          req.MinimumSkill,
		ScholarshipsAvailable: req.ScholarshipsAvailable,
		BootcampID:            bootcampID,
		UserID:                identity.UserID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := model.Validate(course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, bootcampID)
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, identity Identity, id string, req UpdateCourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(identity, course.UserID) {
		return nil, common.Errorf("User %s is not authorized to update course %s: %w", identity.UserID, id, common.ErrForbidden)
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Weeks != nil {
		course.Weeks = *req.Weeks
	}
	if req.Tuition != nil {
		course.Tuition = *req.Tuition
	}
	if req.MinimumSkill != nil {
		course.MinimumSkill = *req.MinimumSkill
	}
	if req.ScholarshipsAvailable != nil {
		course.ScholarshipsAvailable = *req.ScholarshipsAvailable
	}
	if err := model.Validate(course); err != nil {
		return nil, err
	}

	course.UpdatedAt = time.Now()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, course.BootcampID)
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, identity Identity, id string) error {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(identity, course.UserID) {
		return common.Errorf("User %s is not authorized to delete course %s: %w", identity.UserID, id, common.ErrForbidden)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recomputeAverageCost(ctx, course.BootcampID)
	return nil
}

// recomputeAverageCost refreshes the parent bootcamp's averageCost as the
// tuition mean rounded up to the nearest 10, unsetting it when no courses
// remain. Failures are logged, not surfaced: a course write never bounces
// on the derived field.
func (s *CourseService) recomputeAverageCost(ctx context.Context, bootcampID string) {
	avg, count, err := s.courseRepo.AverageTuition(ctx, bootcampID)
	if err != nil {
		log.Printf("ERROR: failed to compute average tuition for bootcamp %s: %v", bootcampID, err)
		return
	}

	bootcamp, err := s.bootcampRepo.FindByID(ctx, bootcampID)
	if err != nil {
		log.Printf("ERROR: failed to load bootcamp %s for average cost update: %v", bootcampID, err)
		return
	}

	if count == 0 {
		bootcamp.AverageCost = nil
	} else {
		cost := int(math.Ceil(avg/10) * 10)
		bootcamp.AverageCost = &cost
	}
	bootcamp.UpdatedAt = time.Now()

	if err := s.bootcampRepo.Update(ctx, bootcamp); err != nil {
		log.Printf("ERROR: failed to update average cost for bootcamp %s: %v", bootcampID, err)
	}
}
