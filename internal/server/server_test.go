package server

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
	authrepo "github.com/hamzazerouala/windevexpert/internal/auth/repository"
	authservice "github.com/hamzazerouala/windevexpert/internal/auth/service"
	checkoutservice "github.com/hamzazerouala/windevexpert/internal/checkout/service"
	"github.com/hamzazerouala/windevexpert/internal/config"
	coursedomain "github.com/hamzazerouala/windevexpert/internal/course/domain"
	courserepo "github.com/hamzazerouala/windevexpert/internal/course/repository"
	courseservice "github.com/hamzazerouala/windevexpert/internal/course/service"
	enrollmentdomain "github.com/hamzazerouala/windevexpert/internal/enrollment/domain"
	enrollmentrepo "github.com/hamzazerouala/windevexpert/internal/enrollment/repository"
	paymentservice "github.com/hamzazerouala/windevexpert/internal/payment/service"
	"github.com/hamzazerouala/windevexpert/internal/payment/signature"
	"github.com/hamzazerouala/windevexpert/internal/profile"
	"github.com/hamzazerouala/windevexpert/internal/providers/email"
	"github.com/hamzazerouala/windevexpert/pkg/db"
)

const (
	testJWTSecret     = "server-test-secret"
	testWebhookSecret = "whsec_server_test"
	testUserEmail     = "student@example.com"
	testUserPassword  = "correct-horse-battery"
)

type testEnv struct {
	srv    *Server
	db     *gorm.DB
	course coursedomain.Course
}

func newTestEnv(t *testing.T, providerURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&authdomain.User{}, &coursedomain.Course{}, &enrollmentdomain.Enrollment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Config{
		Port:                    "0",
		JWTSecret:               testJWTSecret,
		TokenTTLMinutes:         60,
		StripeAPIKey:            "sk_test_abc",
		StripeAPIBase:           providerURL,
		StripeWebhookSecret:     testWebhookSecret,
		WebhookToleranceSeconds: 300,
		FrontendURL:             "https://app.example.com",
	}

	log := zap.NewNop()
	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	users := authrepo.New(conn)
	courses := courserepo.New(conn)
	enrollments := enrollmentrepo.Provide()
	authsvc := authservice.New(log, users, cfg)

	if _, err := authsvc.CreateUser(t.Context(), authdomain.CreateUserRequest{
		Email:    testUserEmail,
		Password: testUserPassword,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	course := coursedomain.Course{ID: uuid.New(), Title: "WLanguage Foundations", Price: 19.99}
	if err := conn.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}

	checkoutsvc := checkoutservice.NewService(checkoutservice.Params{
		Log:     log,
		Config:  cfg,
		Courses: courses,
	}, nil)

	paymentsvc := paymentservice.NewService(paymentservice.Params{
		Log:         log,
		DB:          conn,
		GenID:       node,
		Enrollments: enrollments,
		Courses:     courses,
		Users:       users,
		Email:       &email.NoOpProvider{},
	}, nil)

	srv := NewServer(ServerParams{
		Gin:         NewEngine(log, nil),
		Cfg:         cfg,
		Log:         log,
		DB:          conn,
		Authsvc:     authsvc,
		Coursesvc:   courseservice.New(log, courses),
		Checkoutsvc: checkoutsvc,
		Paymentsvc:  paymentsvc,
		Profilesvc:  profile.NewService(log, users),
		Enrollments: enrollments,
		Verifier: signature.New(testWebhookSecret,
			time.Duration(cfg.WebhookToleranceSeconds)*time.Second),
	})

	return &testEnv{srv: srv, db: conn, course: course}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.srv.Engine().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	body := fmt.Appendf(nil, `{"email":%q,"password":%q}`, testUserEmail, testUserPassword)
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func (e *testEnv) userID(t *testing.T) uuid.UUID {
	t.Helper()
	var user authdomain.User
	if err := e.db.Where("email = ?", testUserEmail).First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return user.ID
}

func signedHeader(ts time.Time, body []byte) string {
	unix := fmt.Sprint(ts.Unix())
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%s.%s", unix, body)
	return fmt.Sprintf("t=%s,v1=%s", unix, hex.EncodeToString(mac.Sum(nil)))
}

func TestPurchaseAndWebhookFlow(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_flow_1","url":"https://checkout.example.com/pay/cs_flow_1"}`))
	}))
	defer provider.Close()

	env := newTestEnv(t, provider.URL)
	token := env.login(t)

	// Catalog is public.
	rec := env.do(t, http.MethodGet, "/api/courses", "", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list courses: status %d", rec.Code)
	}

	// Purchase opens a hosted session.
	rec = env.do(t, http.MethodPost, "/api/courses/"+env.course.ID.String()+"/purchase", token, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("purchase: status %d body %s", rec.Code, rec.Body)
	}
	var purchase struct {
		URL string `json:"stripe_session_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &purchase); err != nil {
		t.Fatalf("decode purchase response: %v", err)
	}
	if purchase.URL != "https://checkout.example.com/pay/cs_flow_1" {
		t.Fatalf("unexpected checkout url %q", purchase.URL)
	}

	// Provider confirms via signed webhook.
	body := fmt.Appendf(nil, `{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_flow_1",
			"amount_total": 1999,
			"currency": "usd",
			"metadata": {"user_id": %q, "course_id": %q}
		}}
	}`, env.userID(t), env.course.ID)

	rec = env.do(t, http.MethodPost, "/api/stripe/webhook", "", body, map[string]string{
		"Stripe-Signature": signedHeader(time.Now(), body),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("webhook: status %d body %s", rec.Code, rec.Body)
	}

	var count int64
	if err := env.db.Model(&enrollmentdomain.Enrollment{}).Count(&count).Error; err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 enrollment, got %d", count)
	}

	// A redelivered event acknowledges without changing state.
	rec = env.do(t, http.MethodPost, "/api/stripe/webhook", "", body, map[string]string{
		"Stripe-Signature": signedHeader(time.Now(), body),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("redelivered webhook: status %d", rec.Code)
	}
	if err := env.db.Model(&enrollmentdomain.Enrollment{}).Count(&count).Error; err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 enrollment after redelivery, got %d", count)
	}

	var course coursedomain.Course
	if err := env.db.First(&course, "id = ?", env.course.ID).Error; err != nil {
		t.Fatalf("load course: %v", err)
	}
	if course.StudentsCount != 1 {
		t.Fatalf("expected students_count 1, got %d", course.StudentsCount)
	}

	// The buyer sees the enrollment.
	rec = env.do(t, http.MethodGet, "/api/me/enrollments", token, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list enrollments: status %d", rec.Code)
	}
	var list struct {
		Enrollments []enrollmentdomain.Enrollment `json:"enrollments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode enrollments: %v", err)
	}
	if len(list.Enrollments) != 1 {
		t.Fatalf("expected 1 enrollment in listing, got %d", len(list.Enrollments))
	}
}

func TestWebhookRejectsBadSignatures(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")

	body := fmt.Appendf(nil, `{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_bad",
			"metadata": {"user_id": %q, "course_id": %q}
		}}
	}`, env.userID(t), env.course.ID)

	cases := []struct {
		name    string
		headers map[string]string
	}{
		{"missing header", nil},
		{"missing v1", map[string]string{"Stripe-Signature": fmt.Sprintf("t=%d", time.Now().Unix())}},
		{"wrong secret", map[string]string{"Stripe-Signature": func() string {
			unix := fmt.Sprint(time.Now().Unix())
			mac := hmac.New(sha256.New, []byte("other-secret"))
			fmt.Fprintf(mac, "%s.%s", unix, body)
			return fmt.Sprintf("t=%s,v1=%s", unix, hex.EncodeToString(mac.Sum(nil)))
		}()}},
		{"stale timestamp", map[string]string{"Stripe-Signature": signedHeader(time.Now().Add(-time.Hour), body)}},
	}

	for _, tc := range cases {
		rec := env.do(t, http.MethodPost, "/api/stripe/webhook", "", body, tc.headers)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d body %s", tc.name, rec.Code, rec.Body)
		}
	}

	var count int64
	if err := env.db.Model(&enrollmentdomain.Enrollment{}).Count(&count).Error; err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no enrollments, got %d", count)
	}
}

func TestWebhookAcceptsFallbackHeader(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")

	body := fmt.Appendf(nil, `{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_fallback",
			"amount_total": 1999,
			"currency": "usd",
			"metadata": {"user_id": %q, "course_id": %q}
		}}
	}`, env.userID(t), env.course.ID)

	rec := env.do(t, http.MethodPost, "/api/stripe/webhook", "", body, map[string]string{
		"X-Signature": signedHeader(time.Now(), body),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback header webhook: status %d body %s", rec.Code, rec.Body)
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")

	body := []byte("{not json")
	rec := env.do(t, http.MethodPost, "/api/stripe/webhook", "", body, map[string]string{
		"Stripe-Signature": signedHeader(time.Now(), body),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestWebhookMissingSecretIsServerFault(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")
	env.srv.verifier = signature.New("", 300*time.Second)

	body := []byte(`{"type":"checkout.session.completed"}`)
	rec := env.do(t, http.MethodPost, "/api/stripe/webhook", "", body, map[string]string{
		"Stripe-Signature": signedHeader(time.Now(), body),
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when no secret is configured, got %d", rec.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")

	body := fmt.Appendf(nil, `{"email":%q,"password":"wrong"}`, testUserEmail)
	rec := env.do(t, http.MethodPost, "/api/auth/login", "", body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", []byte(`{"email":`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed login body, got %d", rec.Code)
	}
}

func TestPurchaseRequiresAuth(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")

	rec := env.do(t, http.MethodPost, "/api/courses/"+env.course.ID.String()+"/purchase", "", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/courses/"+env.course.ID.String()+"/purchase", "garbage", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestPurchaseUnknownCourse(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/courses/"+uuid.NewString()+"/purchase", token, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown course, got %d", rec.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")
	token := env.login(t)

	body := []byte(`{"full_name":"Hamza Z.","job_title":"WinDev Consultant"}`)
	rec := env.do(t, http.MethodPut, "/api/profile", token, body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: status %d body %s", rec.Code, rec.Body)
	}

	var user authdomain.User
	if err := env.db.Where("email = ?", testUserEmail).First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.FullName == nil || *user.FullName != "Hamza Z." {
		t.Fatalf("full_name not persisted: %v", user.FullName)
	}
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:0")
	token := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/me", token, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status %d", rec.Code)
	}
	var resp struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if resp.Email != testUserEmail {
		t.Fatalf("unexpected email %q", resp.Email)
	}
}
