package model

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBootcamp() *Bootcamp {
	return &Bootcamp{
		ID:          "b1",
		Name:        "Devworks Bootcamp",
		Description: "Full stack JavaScript bootcamp",
		Website:     "https://devworks.com",
		Phone:       "(111) 111-1111",
		Email:       "enroll@devworks.com",
		Careers:     []string{"Web Development", "UI/UX"},
		Photo:       DefaultPhoto,
		UserID:      "u1",
	}
}

func fieldTags(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr validator.ValidationErrors
	require.ErrorAs(t, err, &verr)
	tags := map[string]string{}
	for _, fe := range verr {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

func TestBootcampValidation(t *testing.T) {
	require.NoError(t, Validate(validBootcamp()))

	t.Run("name bounds", func(t *testing.T) {
		b := validBootcamp()
		b.Name = "abc"
		assert.Equal(t, "min", fieldTags(t, Validate(b))["Name"])

		b.Name = strings.Repeat("x", 51)
		assert.Equal(t, "max", fieldTags(t, Validate(b))["Name"])
	})

	t.Run("description required", func(t *testing.T) {
		b := validBootcamp()
		b.Description = ""
		assert.Equal(t, "required", fieldTags(t, Validate(b))["Description"])
	})

	t.Run("website pattern", func(t *testing.T) {
		b := validBootcamp()
		b.Website = "not a url"
		assert.Equal(t, "url", fieldTags(t, Validate(b))["Website"])
	})

	t.Run("careers enum", func(t *testing.T) {
		b := validBootcamp()
		b.Careers = []string{"Gardening"}
		assert.Equal(t, "career", fieldTags(t, Validate(b))["Careers[0]"])

		b.Careers = nil
		assert.Equal(t, "required", fieldTags(t, Validate(b))["Careers"])
	})

	t.Run("average rating bounds", func(t *testing.T) {
		b := validBootcamp()
		rating := 11.0
		b.AverageRating = &rating
		assert.Equal(t, "lte", fieldTags(t, Validate(b))["AverageRating"])
	})
}

func TestCourseValidation(t *testing.T) {
	course := &Course{
		ID:           "c1",
		Title:        "Front End Web Development",
		Description:  "HTML, CSS and JavaScript",
		Weeks:        "8",
		Tuition:      8000,
		MinimumSkill: SkillBeginner,
		BootcampID:   "b1",
		UserID:       "u1",
	}
	require.NoError(t, Validate(course))

	course.MinimumSkill = "wizard"
	assert.Equal(t, "oneof", fieldTags(t, Validate(course))["MinimumSkill"])

	course.MinimumSkill = SkillAdvanced
	course.BootcampID = ""
	assert.Equal(t, "required", fieldTags(t, Validate(course))["BootcampID"])
}

func TestUserValidation(t *testing.T) {
	user := &User{
		ID:        "u1",
		Name:      "John Doe",
		Email:     "john@campdir.io",
		Role:      RolePublisher,
		Password:  "123456",
		CreatedAt: time.Now(),
	}
	require.NoError(t, Validate(user))

	user.Email = "nope"
	assert.Equal(t, "email", fieldTags(t, Validate(user))["Email"])

	user.Email = "john@campdir.io"
	user.Password = "12345"
	assert.Equal(t, "min", fieldTags(t, Validate(user))["Password"])

	user.Password = "123456"
	user.Role = "superuser"
	assert.Equal(t, "oneof", fieldTags(t, Validate(user))["Role"])
}
