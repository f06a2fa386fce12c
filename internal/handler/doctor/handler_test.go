package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/handler"
	"github.com/medagenda/clinic-api/internal/model"
	doctorService "github.com/medagenda/clinic-api/internal/service/doctor"
	apperrors "github.com/medagenda/clinic-api/pkg/errors"
	"github.com/medagenda/clinic-api/pkg/httputil"
)

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (r *fakeDoctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	d.Touch()
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NewNotFound("doctor", nil)
	}
	return d, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, d *model.Doctor) error {
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	return nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		if d.ClinicID == clinicID {
			out = append(out, d)
		}
	}
	return out, nil
}

// fakeClinicRepo enrolls everyone: the tests here target the validation and
// binding path, membership is covered by the service tests.
type fakeClinicRepo struct{}

func (r *fakeClinicRepo) CreateWithMember(ctx context.Context, c *model.Clinic, userID uuid.UUID) error {
	return nil
}
func (r *fakeClinicRepo) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return nil, apperrors.NewNotFound("clinic", nil)
}
func (r *fakeClinicRepo) Update(ctx context.Context, c *model.Clinic) error { return nil }
func (r *fakeClinicRepo) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (r *fakeClinicRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}
func (r *fakeClinicRepo) IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error) {
	return true, nil
}
func (r *fakeClinicRepo) ListMembers(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicMember, error) {
	return nil, nil
}
func (r *fakeClinicRepo) AddMember(ctx context.Context, m *model.ClinicMember) error { return nil }
func (r *fakeClinicRepo) RemoveMember(ctx context.Context, clinicID, userID uuid.UUID) error {
	return nil
}

type fakeViews struct {
	invalidated []string
}

func (v *fakeViews) Overview(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) (*model.ClinicCounts, error) {
	return nil, nil
}

func (v *fakeViews) Invalidate(keys []string) {
	v.invalidated = append(v.invalidated, keys...)
}

type fakeEmitter struct {
	types []string
}

func (e *fakeEmitter) Emit(ctx context.Context, eventType string, payload interface{}) {
	e.types = append(e.types, eventType)
}

func (e *fakeEmitter) EmitStale(ctx context.Context, keys []string) {}

func testEngine(repo *fakeDoctorRepo, views *fakeViews, emitter *fakeEmitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(handler.ContextActor, &model.Actor{UserID: uuid.New(), Email: "ana@example.com"})
		c.Next()
	})

	svc := doctorService.NewService(repo, &fakeClinicRepo{})
	NewHandler(svc, views, emitter).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func postDoctor(t *testing.T, engine *gin.Engine, clinicID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clinics/"+clinicID.String()+"/doctors",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func doctorBody(overrides map[string]interface{}) string {
	fields := map[string]interface{}{
		"name":                   "Dr. Ana",
		"speciality":             "cardiologia",
		"available_from_weekday": 1,
		"available_to_weekday":   5,
		"available_from_time":    "08:00",
		"available_to_time":      "17:00",
		"price_cents":            15000,
	}
	for k, v := range overrides {
		fields[k] = v
	}
	b, _ := json.Marshal(fields)
	return string(b)
}

func TestCreateDoctorHandler(t *testing.T) {
	clinicID := uuid.New()

	t.Run("valid submission persists and responds created", func(t *testing.T) {
		repo := newFakeDoctorRepo()
		views := &fakeViews{}
		emitter := &fakeEmitter{}
		engine := testEngine(repo, views, emitter)

		w := postDoctor(t, engine, clinicID, doctorBody(nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, repo.doctors, 1)
		assert.NotEmpty(t, views.invalidated)
		assert.Contains(t, emitter.types, "DOCTOR_CREATE")
	})

	t.Run("unknown speciality fails per field with the localized message", func(t *testing.T) {
		repo := newFakeDoctorRepo()
		emitter := &fakeEmitter{}
		engine := testEngine(repo, &fakeViews{}, emitter)

		w := postDoctor(t, engine, clinicID, doctorBody(map[string]interface{}{
			"speciality": "alquimia",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, repo.doctors)
		assert.Empty(t, emitter.types)

		var resp httputil.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Fields, 1)
		assert.Equal(t, "speciality", resp.Error.Fields[0].Field)
		assert.Equal(t, "Especialidade inválida", resp.Error.Fields[0].Message)
	})

	t.Run("ending before start fails on the ending field", func(t *testing.T) {
		engine := testEngine(newFakeDoctorRepo(), &fakeViews{}, &fakeEmitter{})

		w := postDoctor(t, engine, clinicID, doctorBody(map[string]interface{}{
			"available_from_time": "17:00",
			"available_to_time":   "08:00",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp httputil.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Fields, 1)
		assert.Equal(t, "available_to_time", resp.Error.Fields[0].Field)
	})

	t.Run("off-grid time slot is rejected", func(t *testing.T) {
		repo := newFakeDoctorRepo()
		engine := testEngine(repo, &fakeViews{}, &fakeEmitter{})

		w := postDoctor(t, engine, clinicID, doctorBody(map[string]interface{}{
			"available_from_time": "08:10",
		}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, repo.doctors)
	})
}

func TestUpdateDoctorHandlerPreservesCreatedAt(t *testing.T) {
	clinicID := uuid.New()
	repo := newFakeDoctorRepo()
	engine := testEngine(repo, &fakeViews{}, &fakeEmitter{})

	w := postDoctor(t, engine, clinicID, doctorBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var id uuid.UUID
	var createdAt time.Time
	for _, d := range repo.doctors {
		id = d.ID
		createdAt = d.CreatedAt
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		"/api/v1/clinics/"+clinicID.String()+"/doctors/"+id.String(),
		strings.NewReader(doctorBody(map[string]interface{}{"name": "Dra. Beatriz"})))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dra. Beatriz", repo.doctors[id].Name)
	assert.Equal(t, createdAt, repo.doctors[id].CreatedAt)
}
