package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pawcare-grooming-api/internal/middleware"
	"github.com/noah-isme/pawcare-grooming-api/internal/models"
	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
)

type availabilityServiceMock struct {
	checkReq    service.CheckStylistRequest
	checkResp   *models.StylistAvailabilityCheck
	checkErr    error
	rosterResp  []models.StylistMatch
	suitable    []models.Stylist
	suitableHit bool
	slotsReq    service.OpenSlotsRequest
}

func (m *availabilityServiceMock) CheckStylist(ctx context.Context, req service.CheckStylistRequest) (*models.StylistAvailabilityCheck, error) {
	m.checkReq = req
	return m.checkResp, m.checkErr
}

func (m *availabilityServiceMock) AvailableStylists(ctx context.Context, req service.RosterAvailabilityRequest) ([]models.StylistMatch, error) {
	return m.rosterResp, nil
}

func (m *availabilityServiceMock) SuitableStylists(ctx context.Context, req service.SuitableStylistsRequest) ([]models.Stylist, bool, error) {
	return m.suitable, m.suitableHit, nil
}

func (m *availabilityServiceMock) OpenSlots(ctx context.Context, req service.OpenSlotsRequest) (*models.OpenSlots, error) {
	m.slotsReq = req
	return &models.OpenSlots{StylistID: req.StylistID, Date: req.Date, DurationMinutes: req.DurationMinutes, Slots: []string{"10:00"}}, nil
}

func jsonContext(method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var body []byte
	switch v := payload.(type) {
	case nil:
	case string:
		body = []byte(v)
	default:
		body, _ = json.Marshal(v)
	}
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAvailabilityHandlerCheck(t *testing.T) {
	reason := "Skill mismatch"
	mock := &availabilityServiceMock{checkResp: &models.StylistAvailabilityCheck{
		StylistID: "sty-1",
		Conflict:  models.StylistConflict{HasConflict: true, Reason: &reason, Conflicts: []models.ConflictDetail{{Type: models.ConflictSkill, Message: "Stylist does not handle aggressive pets"}}},
	}}
	handler := NewAvailabilityHandler(mock)
	c, w := jsonContext(http.MethodPost, "/availability/check", map[string]interface{}{
		"stylist_id": "sty-1",
		"date":       "2024-05-01",
		"start_time": "10:00",
		"end_time":   "11:00",
		"pet":        map[string]interface{}{"pet_size": "large", "is_aggressive": true},
	})

	handler.Check(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "large", mock.checkReq.Pet.PetSize)
	assert.True(t, mock.checkReq.Pet.IsAggressive)

	var check models.StylistAvailabilityCheck
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &check))
	assert.False(t, check.IsAvailable)
	assert.Equal(t, "Skill mismatch", *check.Conflict.Reason)
}

func TestAvailabilityHandlerCheckInvalidBody(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{})
	c, w := jsonContext(http.MethodPost, "/availability/check", "{")

	handler.Check(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, w).Error.Code)
}

func TestAvailabilityHandlerCheckServiceError(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{checkErr: appErrors.Clone(appErrors.ErrNotFound, "stylist not found")})
	c, w := jsonContext(http.MethodPost, "/availability/check", map[string]string{"stylist_id": "missing"})

	handler.Check(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "stylist not found", decode(t, w).Error.Message)
}

func TestAvailabilityHandlerStylistsCount(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{rosterResp: []models.StylistMatch{
		{Stylist: models.Stylist{ID: "a"}}, {Stylist: models.Stylist{ID: "b"}},
	}})
	c, w := jsonContext(http.MethodPost, "/availability/stylists", map[string]string{"facility_id": "fac-1"})

	handler.Stylists(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w).Meta["count"])
}

func TestAvailabilityHandlerSuitableCacheMeta(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{suitable: []models.Stylist{{ID: "a"}}, suitableHit: true})
	c, w := jsonContext(http.MethodPost, "/availability/suitable", map[string]interface{}{
		"facility_id": "fac-1",
		"pet":         map[string]string{"pet_size": "small"},
	})
	middleware.WithResponseMeta()(c)

	handler.Suitable(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w).Meta["cache_hit"])
}

func TestAvailabilityHandlerOpenSlotsQuery(t *testing.T) {
	mock := &availabilityServiceMock{}
	handler := NewAvailabilityHandler(mock)
	c, w := jsonContext(http.MethodGet, "/stylists/sty-1/open-slots?date=2024-05-01&duration=45&step=15&pet_size=Medium&coat_condition=matted&is_anxious=true", nil)
	c.Params = gin.Params{{Key: "id", Value: "sty-1"}}

	handler.OpenSlots(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sty-1", mock.slotsReq.StylistID)
	assert.Equal(t, 45, mock.slotsReq.DurationMinutes)
	assert.Equal(t, 15, mock.slotsReq.StepMinutes)
	assert.Equal(t, "medium", mock.slotsReq.Pet.PetSize)
	assert.Equal(t, "matted", mock.slotsReq.Pet.CoatCondition)
	assert.True(t, mock.slotsReq.Pet.IsAnxious)
	assert.False(t, mock.slotsReq.Pet.IsAggressive)
}

func TestAvailabilityHandlerOpenSlotsRejectsMalformedTemperament(t *testing.T) {
	for _, query := range []string{"is_anxious=yes", "is_aggressive=maybe"} {
		mock := &availabilityServiceMock{}
		handler := NewAvailabilityHandler(mock)
		c, w := jsonContext(http.MethodGet, "/stylists/sty-1/open-slots?date=2024-05-01&duration=45&pet_size=small&"+query, nil)
		c.Params = gin.Params{{Key: "id", Value: "sty-1"}}

		handler.OpenSlots(c)
		require.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Equal(t, appErrors.ErrValidation.Code, decode(t, w).Error.Code)
		assert.Empty(t, mock.slotsReq.StylistID)
	}
}
