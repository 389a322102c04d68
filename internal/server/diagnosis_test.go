package server

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	diagnosisdomain "github.com/agrimart/agrimart/internal/diagnosis/domain"
)

type fakeDiagnosisService struct {
	lastPlant string
	lastBytes int
	result    *diagnosisdomain.Result
	err       error
}

func (f *fakeDiagnosisService) Analyze(ctx context.Context, plantType string, imageData []byte) (*diagnosisdomain.Result, error) {
	_ = ctx
	f.lastPlant = plantType
	f.lastBytes = len(imageData)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newDiagnosisTestServer(svc diagnosisdomain.Service) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	srv := &Server{diagnosisSvc: svc}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/analyze", srv.AnalyzeRateLimit(), srv.Analyze)
	return srv, router
}

func analyzeRequest(t *testing.T, plantType string, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if plantType != "" {
		if err := writer.WriteField("plant_type", plantType); err != nil {
			t.Fatalf("write plant_type: %v", err)
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "leaf.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeReturnsPrediction(t *testing.T) {
	svc := &fakeDiagnosisService{
		result: &diagnosisdomain.Result{
			PlantType:      "tomato",
			Disease:        "Early Blight",
			Confidence:     "91.32%",
			Treatments:     []string{"Remove affected leaves"},
			AdditionalInfo: "High confidence detection. Immediate treatment recommended.",
		},
	}
	_, router := newDiagnosisTestServer(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analyzeRequest(t, "tomato", []byte("fake-image-bytes")))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastPlant != "tomato" {
		t.Fatalf("expected plant tomato, got %q", svc.lastPlant)
	}
	if svc.lastBytes != len("fake-image-bytes") {
		t.Fatalf("expected full image payload, got %d bytes", svc.lastBytes)
	}
	if !strings.Contains(resp.Body.String(), `"disease":"Early Blight"`) {
		t.Fatalf("expected prediction payload, got %s", resp.Body.String())
	}
}

func TestAnalyzeRequiresPlantType(t *testing.T) {
	svc := &fakeDiagnosisService{}
	_, router := newDiagnosisTestServer(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analyzeRequest(t, "", []byte("fake-image-bytes")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if svc.lastBytes != 0 {
		t.Fatal("expected service not to be called")
	}
}

func TestAnalyzeRequiresImage(t *testing.T) {
	_, router := newDiagnosisTestServer(&fakeDiagnosisService{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analyzeRequest(t, "tomato", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAnalyzeUnsupportedPlantReturns400(t *testing.T) {
	svc := &fakeDiagnosisService{err: diagnosisdomain.ErrUnsupportedPlant}
	_, router := newDiagnosisTestServer(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analyzeRequest(t, "cactus", []byte("fake-image-bytes")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAnalyzeModelUnavailableReturns503(t *testing.T) {
	svc := &fakeDiagnosisService{err: diagnosisdomain.ErrModelUnavailable}
	_, router := newDiagnosisTestServer(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analyzeRequest(t, "mango", []byte("fake-image-bytes")))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestAnalyzeUnknownErrorReturns500(t *testing.T) {
	svc := &fakeDiagnosisService{err: errors.New("boom")}
	_, router := newDiagnosisTestServer(svc)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analyzeRequest(t, "rice", []byte("fake-image-bytes")))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}
