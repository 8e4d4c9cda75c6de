package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"campdir/internal/api"
	"campdir/internal/app/service"
	"campdir/internal/common"
	"campdir/internal/common/security"
	"campdir/internal/domain/model"
	"campdir/internal/domain/repository"
	"campdir/internal/platform/config"
	"campdir/internal/platform/geocoder"
	"campdir/internal/platform/queue"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

// ---- user repository fake ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return duplicateKeyErr()
		}
	}
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByResetToken(_ context.Context, hashedToken string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetPasswordToken == hashedToken &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.users {
		if existing.ID == u.ID {
			cp := *u
			f.users[i] = &cp
			return nil
		}
	}
	return common.ErrNotFound
}

// ---- bootcamp repository fake ----

type fakeBootcampRepo struct {
	mu    sync.Mutex
	items []*model.Bootcamp
}

func (f *fakeBootcampRepo) Create(_ context.Context, b *model.Bootcamp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Name == b.Name {
			return duplicateKeyErr()
		}
	}
	cp := *b
	f.items = append(f.items, &cp)
	return nil
}

// List honors equality filters on plain values, name sorting and
// skip/limit; the operator translation itself is covered by the query
// builder tests.
func (f *fakeBootcampRepo) List(_ context.Context, q *repository.ListQuery) ([]model.Bootcamp, *repository.Pagination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []model.Bootcamp{}
	for _, b := range f.items {
		if owner, ok := q.Filter["user"].(string); ok && b.UserID != owner {
			continue
		}
		matched = append(matched, *b)
	}

	if len(q.Sort) > 0 && q.Sort[0].Key == "name" {
		desc := q.Sort[0].Value == -1
		sort.Slice(matched, func(i, j int) bool {
			if desc {
				return matched[i].Name > matched[j].Name
			}
			return matched[i].Name < matched[j].Name
		})
	}

	total := int64(len(matched))
	start := int(q.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], repository.NewPagination(q.Page, q.Limit, total), nil
}

func (f *fakeBootcampRepo) FindByID(_ context.Context, id string) (*model.Bootcamp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBootcampRepo) FindByOwner(_ context.Context, userID string) (*model.Bootcamp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBootcampRepo) FindWithinRadius(_ context.Context, _, _, _ float64) ([]model.Bootcamp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Bootcamp{}
	for _, b := range f.items {
		if b.Location != nil {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBootcampRepo) Update(_ context.Context, b *model.Bootcamp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == b.ID {
			cp := *b
			f.items[i] = &cp
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeBootcampRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

// ---- course repository fake ----

type fakeCourseRepo struct {
	mu    sync.Mutex
	items []*model.Course
}

func (f *fakeCourseRepo) Create(_ context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeCourseRepo) List(_ context.Context, q *repository.ListQuery) ([]model.Course, *repository.Pagination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []model.Course{}
	for _, c := range f.items {
		if bootcampID, ok := q.Filter["bootcamp"].(string); ok && c.BootcampID != bootcampID {
			continue
		}
		matched = append(matched, *c)
	}

	total := int64(len(matched))
	start := int(q.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], repository.NewPagination(q.Page, q.Limit, total), nil
}

func (f *fakeCourseRepo) ListByBootcamp(_ context.Context, bootcampID string) ([]model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Course{}
	for _, c := range f.items {
		if c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) FindByID(_ context.Context, id string) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeCourseRepo) Update(_ context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == c.ID {
			cp := *c
			f.items[i] = &cp
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, c := range f.items {
		if c.BootcampID != bootcampID {
			kept = append(kept, c)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeCourseRepo) AverageTuition(_ context.Context, bootcampID string) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	var count int64
	for _, c := range f.items {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// ---- geocoder and mail queue fakes ----

type fakeGeocoder struct {
	mu        sync.Mutex
	addresses []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*geocoder.Result, error) {
	f.mu.Lock()
	f.addresses = append(f.addresses, address)
	f.mu.Unlock()
	return &geocoder.Result{
		Longitude: -71.104028,
		Latitude:  42.350846,
		Street:    "233 Bay State Rd",
		City:      "Boston",
		State:     "MA",
		Zipcode:   "02215",
		Country:   "US",
	}, nil
}

type fakeMailQueue struct {
	mu   sync.Mutex
	jobs []queue.MailJob
}

func (f *fakeMailQueue) Enqueue(_ context.Context, job queue.MailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

// ---- test environment ----

type testEnv struct {
	router    http.Handler
	users     *fakeUserRepo
	bootcamps *fakeBootcampRepo
	courses   *fakeCourseRepo
	geocoder  *fakeGeocoder
	mailQueue *fakeMailQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{
		APIPort:        "5000",
		Env:            "test",
		JWTKey:         []byte("test-secret"),
		JWTExp:         time.Hour,
		JWTCookieExp:   time.Hour,
		MaxUploadBytes: 1000,
		UploadDir:      t.TempDir(),
		PublicBaseURL:  "http://localhost:5000",
	}
	security.InitJWT()

	env := &testEnv{
		users:     &fakeUserRepo{},
		bootcamps: &fakeBootcampRepo{},
		courses:   &fakeCourseRepo{},
		geocoder:  &fakeGeocoder{},
		mailQueue: &fakeMailQueue{},
	}

	authService := service.NewAuthService(env.users, env.mailQueue, config.AppConfig.PublicBaseURL)
	bootcampService := service.NewBootcampService(
		env.bootcamps, env.courses, env.geocoder,
		config.AppConfig.UploadDir, config.AppConfig.MaxUploadBytes,
	)
	courseService := service.NewCourseService(env.courses, env.bootcamps)

	env.router = api.NewRouter(authService, bootcampService, courseService)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func (e *testEnv) registerPublisher(t *testing.T, name, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "123456",
		"role":     model.RolePublisher,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) createBootcamp(t *testing.T, token, name string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/bootcamps", map[string]interface{}{
		"name":        name,
		"description": "A fine place to learn software",
		"address":     "233 Bay State Rd Boston MA 02215",
		"careers":     []string{"Web Development"},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	id, _ := data["_id"].(string)
	require.NotEmpty(t, id)
	return id
}
