package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/agrimart/agrimart/internal/diagnosis/domain"
	"github.com/agrimart/agrimart/internal/diagnosis/registry"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSession struct {
	logits []float32
}

func (s *stubSession) Run(input []float32) ([]float32, error) {
	if len(input) != 3*inputSize*inputSize {
		panic("unexpected tensor size")
	}
	return s.logits, nil
}

func (s *stubSession) Close() error { return nil }

type countingLoader struct {
	loads  atomic.Int64
	logits []float32
	names  []string
	cures  map[string][]string
}

func (l *countingLoader) Load(ctx context.Context, entry domain.Entry) (*domain.Model, error) {
	l.loads.Add(1)
	return &domain.Model{
		Session:    &stubSession{logits: l.logits},
		ClassNames: l.names,
		Treatments: l.cures,
	}, nil
}

func newTestService(t *testing.T, loader domain.Loader) domain.Service {
	t.Helper()

	modelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "tomato_classifier.onnx"), []byte("stub"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "resnet18_potato_v2.onnx"), []byte("stub"), 0o644))

	return New(Params{
		Log:      zap.NewNop(),
		Registry: registry.New(modelDir, t.TempDir()),
		Loader:   loader,
	})
}

func testImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: 128, B: uint8(y * 8), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalyzeUnsupportedPlantListsSupported(t *testing.T) {
	svc := newTestService(t, &countingLoader{})

	_, err := svc.Analyze(context.Background(), "cactus", testImage(t))
	require.ErrorIs(t, err, domain.ErrUnsupportedPlant)
	require.Contains(t, err.Error(), "tomato")
	require.Contains(t, err.Error(), "wheat")
}

func TestAnalyzeRejectsOversizedImage(t *testing.T) {
	loader := &countingLoader{}
	svc := newTestService(t, loader)

	oversized := make([]byte, domain.MaxImageBytes+1)
	_, err := svc.Analyze(context.Background(), "tomato", oversized)
	require.ErrorIs(t, err, domain.ErrImageTooLarge)
	require.Zero(t, loader.loads.Load(), "oversized upload must be rejected before any model load")
}

func TestAnalyzeRejectsGarbageImage(t *testing.T) {
	loader := &countingLoader{
		logits: []float32{0.1, 0.2},
		names:  []string{"Tomato_healthy", "Tomato_blight"},
	}
	svc := newTestService(t, loader)

	_, err := svc.Analyze(context.Background(), "tomato", []byte("not an image"))
	require.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestAnalyzePrediction(t *testing.T) {
	loader := &countingLoader{
		logits: []float32{-2, 5, 0},
		names:  []string{"Tomato_healthy", "Tomato_early_blight", "Tomato_late_blight"},
		cures: map[string][]string{
			"Tomato_early_blight": {"Remove affected leaves", "Apply copper fungicide"},
		},
	}
	svc := newTestService(t, loader)

	result, err := svc.Analyze(context.Background(), "Tomato", testImage(t))
	require.NoError(t, err)
	require.Equal(t, "tomato", result.PlantType)
	require.Equal(t, "Tomato_early_blight", result.Disease)
	require.Equal(t, []string{"Remove affected leaves", "Apply copper fungicide"}, result.Treatments)
	require.Contains(t, result.AdditionalInfo, "Immediate treatment recommended")
}

func TestAnalyzeHealthyAdvisory(t *testing.T) {
	loader := &countingLoader{
		logits: []float32{5, -2},
		names:  []string{"Tomato_healthy", "Tomato_blight"},
	}
	svc := newTestService(t, loader)

	result, err := svc.Analyze(context.Background(), "tomato", testImage(t))
	require.NoError(t, err)
	require.Contains(t, result.AdditionalInfo, "appears healthy")
	require.Equal(t, defaultTreatments, result.Treatments)
}

func TestModelLoadedAtMostOnce(t *testing.T) {
	loader := &countingLoader{
		logits: []float32{1, 0},
		names:  []string{"Tomato_healthy", "Tomato_blight"},
	}
	svc := newTestService(t, loader)
	img := testImage(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Analyze(context.Background(), "tomato", img)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), loader.loads.Load())
}
