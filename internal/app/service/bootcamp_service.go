package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"campdir/internal/common"
	"campdir/internal/domain/model"
	"campdir/internal/domain/repository"
	"campdir/internal/platform/geocoder"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// earth radius used to convert a distance in miles into radians for the
// $centerSphere radius query
const earthRadiusMiles = 3963.2

// Geocoder resolves a postal address to coordinates and address components.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocoder.Result, error)
}

type BootcampService struct {
	bootcampRepo repository.BootcampRepository
	courseRepo   repository.CourseRepository
	geocoder     Geocoder
	uploadDir    string
	maxUpload    int64
}

func NewBootcampService(
	bootcampRepo repository.BootcampRepository,
	courseRepo repository.CourseRepository,
	geocoder Geocoder,
	uploadDir string,
	maxUpload int64,
) *BootcampService {
	return &BootcampService{
		bootcampRepo: bootcampRepo,
		courseRepo:   courseRepo,
		geocoder:     geocoder,
		uploadDir:    uploadDir,
		maxUpload:    maxUpload,
	}
}

type CreateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGI      bool     `json:"acceptGi"`
}

type UpdateBootcampRequest struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Website       *string   `json:"website,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Careers       *[]string `json:"careers,omitempty"`
	Housing       *bool     `json:"housing,omitempty"`
	JobAssistance *bool     `json:"jobAssistance,omitempty"`
	JobGuarantee  *bool     `json:"jobGuarantee,omitempty"`
	AcceptGI      *bool     `json:"acceptGi,omitempty"`
}

func (s *BootcampService) List(ctx context.Context, q *repository.ListQuery) ([]model.Bootcamp, *repository.Pagination, error) {
	return s.bootcampRepo.List(ctx, q)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*model.Bootcamp, error) {
	return s.bootcampRepo.FindByID(ctx, id)
}

// Create geocodes the submitted address into a stored location, derives
// the slug from the name and discards the raw address.
func (s *BootcampService) Create(ctx context.Context, identity Identity, req CreateBootcampRequest) (*model.Bootcamp, error) {
	// a publisher may list only one bootcamp; admins are exempt
	if !identity.IsAdmin() {
		if _, err := s.bootcampRepo.FindByOwner(ctx, identity.UserID); err == nil {
			return nil, common.Errorf("The user with ID %s has already published a bootcamp: %w", identity.UserID, common.ErrBadRequest)
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	if strings.TrimSpace(req.Address) == "" {
		return nil, common.Errorf("Please add an address: %w", common.ErrValidation)
	}

	now := time.Now()
	b := &model.Bootcamp{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Slug:          slug.Make(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Careers:       req.Careers,
		Photo:         model.DefaultPhoto,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
		UserID:        identity.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := model.Validate(b); err != nil {
		return nil, err
	}

	loc, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	b.Location = &model.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.Longitude, loc.Latitude},
		FormattedAddress: loc.FormattedAddress(),
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.Zipcode,
		Country:          loc.Country,
	}

	if err := s.bootcampRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BootcampService) Update(ctx context.Context, identity Identity, id string, req UpdateBootcampRequest) (*model.Bootcamp, error) {
	b, err := s.bootcampRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(identity, b.UserID) {
		return nil, common.Errorf("User %s is not authorized to update this bootcamp: %w", identity.UserID, common.ErrForbidden)
	}

	if req.Name != nil {
		b.Name = *req.Name
		b.Slug = slug.Make(b.Name)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Website != nil {
		b.Website = *req.Website
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Email != nil {
		b.Email = *req.Email
	}
	if req.Careers != nil {
		b.Careers = *req.Careers
	}
	if req.Housing != nil {
		b.Housing = *req.Housing
	}
	if req.JobAssistance != nil {
		b.JobAssistance = *req.JobAssistance
	}
	if req.JobGuarantee != nil {
		b.JobGuarantee = *req.JobGuarantee
	}
	if req.AcceptGI != nil {
		b.AcceptGI = *req.AcceptGI
	}
	if err := model.Validate(b); err != nil {
		return nil, err
	}

	if req.Address != nil {
		loc, err := s.geocoder.Geocode(ctx, *req.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to geocode address: %w", err)
		}
		b.Location = &model.Location{
			Type:             "Point",
			Coordinates:      []float64{loc.Longitude, loc.Latitude},
			FormattedAddress: loc.FormattedAddress(),
			Street:           loc.Street,
			City:             loc.City,
			State:            loc.State,
			Zipcode:          loc.Zipcode,
			Country:          loc.Country,
		}
	}

	b.UpdatedAt = time.Now()
	if err := s.bootcampRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the bootcamp and cascades to its courses. The cascade
// runs first so a crash in between cannot orphan courses.
func (s *BootcampService) Delete(ctx context.Context, identity Identity, id string) error {
	b, err := s.bootcampRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(identity, b.UserID) {
		return common.Errorf("User %s is not authorized to delete this bootcamp: %w", identity.UserID, common.ErrForbidden)
	}

	if err := s.courseRepo.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	return s.bootcampRepo.Delete(ctx, id)
}

// GetWithinRadius geocodes the zipcode and returns bootcamps within the
// given distance in miles.
func (s *BootcampService) GetWithinRadius(ctx context.Context, zipcode, distance string) ([]model.Bootcamp, error) {
	miles, err := strconv.ParseFloat(distance, 64)
	if err != nil || miles <= 0 {
		return nil, common.Errorf("invalid distance %q: %w", distance, common.ErrBadRequest)
	}

	loc, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode zipcode: %w", err)
	}

	return s.bootcampRepo.FindWithinRadius(ctx, loc.Longitude, loc.Latitude, miles/earthRadiusMiles)
}

// UploadPhoto validates and persists a bootcamp photo, renaming it to
// photo-<bootcampID><ext> under the upload directory.
func (s *BootcampService) UploadPhoto(ctx context.Context, identity Identity, id string, file multipart.File, header *multipart.FileHeader) (*model.Bootcamp, error) {
	b, err := s.bootcampRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(identity, b.UserID) {
		return nil, common.Errorf("User %s is not authorized to update this bootcamp: %w", identity.UserID, common.ErrForbidden)
	}

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image") {
		return nil, common.Errorf("Please upload an image file: %w", common.ErrBadRequest)
	}
	if header.Size > s.maxUpload {
		return nil, common.Errorf("Please upload an image less than %d bytes: %w", s.maxUpload, common.ErrBadRequest)
	}

	filename := "photo-" + b.ID + filepath.Ext(header.Filename)
	if err := s.writeUpload(filename, file); err != nil {
		return nil, common.Errorf("Problem with file upload: %w", err)
	}

	b.Photo = filename
	b.UpdatedAt = time.Now()
	if err := s.bootcampRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BootcampService) writeUpload(filename string, file multipart.File) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return err
	}
	return nil
}
