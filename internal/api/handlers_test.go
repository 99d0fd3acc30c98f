package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hivewatch/internal/config"
	"hivewatch/internal/logging"
	"hivewatch/internal/models"
	"hivewatch/internal/ws"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errNotFound = errors.New("not found")

// stubStore backs the handlers with in-memory data. Zero value serves empty
// collections; err forces every lookup/mutation to fail.
type stubStore struct {
	notifications []models.Notification
	hives         []models.Hive
	trainings     []models.Training
	tips          []models.Tip
	listings      []models.Listing
	snapshots     []models.Snapshot
	err           error

	statusUpdates map[string]string
}

func (s *stubStore) GetNotificationsByUserID(_ context.Context, userID string) ([]models.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubStore) MarkNotificationRead(_ context.Context, id string) error { return s.err }
func (s *stubStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	return s.err
}
func (s *stubStore) DeleteNotification(_ context.Context, id string) error { return s.err }

func (s *stubStore) CreateHive(_ context.Context, in models.HiveCreate) (models.Hive, error) {
	if s.err != nil {
		return models.Hive{}, s.err
	}
	h := models.Hive{
		ID:               "hive-new",
		UserID:           in.UserID,
		UserName:         in.UserName,
		HiveNumber:       in.HiveNumber,
		Location:         in.Location,
		Status:           models.HiveStatusPending,
		InstallationDate: in.InstallationDate,
	}
	s.hives = append(s.hives, h)
	return h, nil
}

func (s *stubStore) GetHive(_ context.Context, id string) (models.Hive, error) {
	if s.err != nil {
		return models.Hive{}, s.err
	}
	for _, h := range s.hives {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Hive{}, errNotFound
}

func (s *stubStore) GetHivesByUserID(_ context.Context, userID string) ([]models.Hive, error) {
	return s.hives, s.err
}
func (s *stubStore) GetPendingHives(_ context.Context) ([]models.Hive, error) {
	return s.hives, s.err
}
func (s *stubStore) GetAllHives(_ context.Context) ([]models.Hive, error) { return s.hives, s.err }
func (s *stubStore) UpdateHive(_ context.Context, id string, in models.HiveUpdate) error {
	return s.err
}

func (s *stubStore) UpdateHiveStatus(_ context.Context, id, status string) error {
	if s.err != nil {
		return s.err
	}
	if s.statusUpdates == nil {
		s.statusUpdates = make(map[string]string)
	}
	s.statusUpdates[id] = status
	return nil
}

func (s *stubStore) DeleteHive(_ context.Context, id string) error { return s.err }

func (s *stubStore) CreateTraining(_ context.Context, in models.TrainingCreate) (models.Training, error) {
	if s.err != nil {
		return models.Training{}, s.err
	}
	return models.Training{ID: "training-new", Title: in.Title}, nil
}
func (s *stubStore) GetTraining(_ context.Context, id string) (models.Training, error) {
	if s.err != nil {
		return models.Training{}, s.err
	}
	return models.Training{}, errNotFound
}
func (s *stubStore) GetAllTrainings(_ context.Context) ([]models.Training, error) {
	return s.trainings, s.err
}
func (s *stubStore) UpdateTraining(_ context.Context, id string, in models.TrainingCreate) error {
	return s.err
}
func (s *stubStore) DeleteTraining(_ context.Context, id string) error { return s.err }

func (s *stubStore) CreateTip(_ context.Context, in models.TipCreate) (models.Tip, error) {
	if s.err != nil {
		return models.Tip{}, s.err
	}
	return models.Tip{ID: "tip-new", Title: in.Title}, nil
}
func (s *stubStore) GetAllTips(_ context.Context) ([]models.Tip, error) { return s.tips, s.err }
func (s *stubStore) DeleteTip(_ context.Context, id string) error      { return s.err }

func (s *stubStore) CreateListing(_ context.Context, in models.ListingCreate) (models.Listing, error) {
	if s.err != nil {
		return models.Listing{}, s.err
	}
	return models.Listing{ID: "listing-new", UserID: in.UserID, Status: models.ListingActive}, nil
}
func (s *stubStore) GetListingsByUserID(_ context.Context, userID string) ([]models.Listing, error) {
	return s.listings, s.err
}
func (s *stubStore) GetActiveListings(_ context.Context) ([]models.Listing, error) {
	return s.listings, s.err
}

func (s *stubStore) UpdateListingStatus(_ context.Context, id, status string) error {
	if s.err != nil {
		return s.err
	}
	if s.statusUpdates == nil {
		s.statusUpdates = make(map[string]string)
	}
	s.statusUpdates[id] = status
	return nil
}

func (s *stubStore) DeleteListing(_ context.Context, id string) error { return s.err }

func (s *stubStore) GetRecentSnapshots(_ context.Context, hiveID string, limit int) ([]models.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.snapshots) {
		limit = len(s.snapshots)
	}
	return s.snapshots[:limit], nil
}

func newTestRouter(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	logger, err := logging.New(t.TempDir(), "error")
	if err != nil {
		t.Fatalf("create test logger: %v", err)
	}
	t.Cleanup(logger.Close)

	var cfg config.Config
	cfg.API.BasePath = "/api/v1"
	return NewRouter(store, ws.NewHub(logger), logger, cfg)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetNotificationsByUser(t *testing.T) {
	store := &stubStore{notifications: []models.Notification{
		{ID: "n-1", UserID: "user-1", Title: "Hive Down Alert", Type: models.NotificationWarning},
		{ID: "n-2", UserID: "user-2", Title: "Gas Detected Alert", Type: models.NotificationError},
	}}
	router := newTestRouter(t, store)

	w := doRequest(t, router, http.MethodGet, "/api/v1/notifications/user/user-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got []models.Notification
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "n-1" {
		t.Fatalf("got %+v", got)
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	router := newTestRouter(t, &stubStore{err: errNotFound})

	w := doRequest(t, router, http.MethodPut, "/api/v1/notifications/n-404/read", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCreateHive(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(t, store)

	body := models.HiveCreate{
		UserID:           "user-1",
		UserName:         "Aisha",
		HiveNumber:       "H-07",
		Location:         "north field",
		InstallationDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	w := doRequest(t, router, http.MethodPost, "/api/v1/hives", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got models.Hive
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != models.HiveStatusPending {
		t.Fatalf("new hive status = %q, want %q", got.Status, models.HiveStatusPending)
	}
}

func TestCreateHiveRejectsIncompleteBody(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doRequest(t, router, http.MethodPost, "/api/v1/hives", map[string]string{"user_id": "user-1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestApproveHive(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(t, store)

	w := doRequest(t, router, http.MethodPut, "/api/v1/hives/hive-1/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := store.statusUpdates["hive-1"]; got != models.HiveStatusConfirmed {
		t.Fatalf("status update = %q, want %q", got, models.HiveStatusConfirmed)
	}
}

func TestUpdateHiveRejectsUnknownStatus(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doRequest(t, router, http.MethodPut, "/api/v1/hives/hive-1", models.HiveUpdate{Status: "golden"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUpdateListingStatusValidation(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(t, store)

	w := doRequest(t, router, http.MethodPut, "/api/v1/listings/l-1/status", map[string]string{"status": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodPut, "/api/v1/listings/l-1/status", map[string]string{"status": models.ListingSold})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := store.statusUpdates["l-1"]; got != models.ListingSold {
		t.Fatalf("status update = %q", got)
	}
}

func TestGetTelemetryHistoryLimit(t *testing.T) {
	store := &stubStore{snapshots: make([]models.Snapshot, 20)}
	router := newTestRouter(t, store)

	w := doRequest(t, router, http.MethodGet, "/api/v1/telemetry/hive-1/history?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []models.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}

	// Default limit when the query param is absent or junk.
	w = doRequest(t, router, http.MethodGet, "/api/v1/telemetry/hive-1/history?limit=-3", nil)
	got = nil
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("len = %d, want default 8", len(got))
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestStoreFailureReturns500(t *testing.T) {
	router := newTestRouter(t, &stubStore{err: errors.New("db down")})

	w := doRequest(t, router, http.MethodGet, "/api/v1/hives", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
