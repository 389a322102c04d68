package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/agrimart/agrimart/internal/diagnosis/domain"
	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime() error {
	ortInitOnce.Do(func() {
		if lib := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ONNX loads classifier checkpoints through the onnxruntime C library.
type ONNX struct {
	log *zap.Logger
}

func NewONNX(log *zap.Logger) domain.Loader {
	return &ONNX{log: log.Named("diagnosis.loader")}
}

func (l *ONNX) Load(ctx context.Context, entry domain.Entry) (*domain.Model, error) {
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("%w: onnxruntime init: %v", domain.ErrModelUnavailable, err)
	}

	classNames, err := loadClassNames(entry.ClassNamesPath)
	if err != nil {
		return nil, err
	}
	if classNames == nil {
		l.log.Warn("class names file missing",
			zap.String("plant", entry.Plant),
			zap.String("path", entry.ClassNamesPath),
		)
		classNames = []string{"Unknown"}
	}

	treatments, err := loadTreatments(entry.TreatmentsPath)
	if err != nil {
		return nil, err
	}
	if treatments == nil {
		l.log.Warn("treatments file missing",
			zap.String("plant", entry.Plant),
			zap.String("path", entry.TreatmentsPath),
		)
		treatments = map[string][]string{}
	}

	session, err := ort.NewDynamicAdvancedSession(entry.ModelPath,
		[]string{"input"}, []string{"output"}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: load checkpoint %s: %v", domain.ErrModelUnavailable, entry.ModelPath, err)
	}

	l.log.Info("model loaded",
		zap.String("plant", entry.Plant),
		zap.String("checkpoint", entry.ModelPath),
		zap.Int("classes", len(classNames)),
	)

	return &domain.Model{
		Session:    &onnxSession{session: session, numClasses: len(classNames)},
		ClassNames: classNames,
		Treatments: treatments,
	}, nil
}

func loadClassNames(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read class names: %v", domain.ErrModelUnavailable, err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("%w: parse class names %s: %v", domain.ErrModelUnavailable, path, err)
	}
	return names, nil
}

func loadTreatments(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read treatments: %v", domain.ErrModelUnavailable, err)
	}

	var treatments map[string][]string
	if err := json.Unmarshal(raw, &treatments); err != nil {
		return nil, fmt.Errorf("%w: parse treatments %s: %v", domain.ErrModelUnavailable, path, err)
	}
	return treatments, nil
}

type onnxSession struct {
	session    *ort.DynamicAdvancedSession
	numClasses int
}

func (s *onnxSession) Run(input []float32) ([]float32, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(1, 3, 224, 224), input)
	if err != nil {
		return nil, err
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(s.numClasses)))
	if err != nil {
		return nil, err
	}
	defer outputTensor.Destroy()

	if err := s.session.Run([]ort.Value{inputTensor}, []ort.Value{outputTensor}); err != nil {
		return nil, err
	}

	data := outputTensor.GetData()
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

func (s *onnxSession) Close() error {
	return s.session.Destroy()
}
