package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agrimart/agrimart/internal/diagnosis/domain"
	"github.com/agrimart/agrimart/internal/diagnosis/registry"
	"github.com/agrimart/agrimart/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var defaultTreatments = []string{"No specific treatment information available."}

type Params struct {
	fx.In

	Log      *zap.Logger
	Registry *registry.Registry
	Loader   domain.Loader
	Metrics  *metrics.Metrics
}

type Service struct {
	log      *zap.Logger
	registry *registry.Registry
	loader   domain.Loader
	metrics  *metrics.Metrics

	mu      sync.Mutex
	models  map[string]*domain.Model
	loading map[string]chan struct{}
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("diagnosis.service"),
		registry: p.Registry,
		loader:   p.Loader,
		metrics:  p.Metrics,
		models:   make(map[string]*domain.Model),
		loading:  make(map[string]chan struct{}),
	}
}

func (s *Service) Analyze(ctx context.Context, plantType string, imageData []byte) (*domain.Result, error) {
	plant := strings.ToLower(strings.TrimSpace(plantType))
	if !s.registry.Supported(plant) {
		return nil, fmt.Errorf("%w: %s. Supported plants: %s",
			domain.ErrUnsupportedPlant, plantType, strings.Join(domain.SupportedPlants, ", "))
	}
	if len(imageData) > domain.MaxImageBytes {
		return nil, domain.ErrImageTooLarge
	}

	model, err := s.model(ctx, plant)
	if err != nil {
		return nil, err
	}

	tensor, err := tensorFromImage(imageData)
	if err != nil {
		return nil, err
	}

	logits, err := model.Session.Run(tensor)
	if err != nil {
		return nil, fmt.Errorf("%w: inference: %v", domain.ErrModelUnavailable, err)
	}

	probs := softmax(logits)
	idx, confidence := argmax(probs)

	disease := "Unknown"
	if idx < len(model.ClassNames) {
		disease = model.ClassNames[idx]
	}

	treatments, ok := model.Treatments[disease]
	if !ok {
		treatments = defaultTreatments
	}

	s.metrics.RecordPrediction(ctx, plant)
	s.log.Info("prediction served",
		zap.String("plant", plant),
		zap.String("disease", disease),
		zap.Float64("confidence", confidence),
	)

	return &domain.Result{
		PlantType:      plant,
		Disease:        disease,
		Confidence:     fmt.Sprintf("%.2f%%", confidence*100),
		Treatments:     treatments,
		AdditionalInfo: additionalInfo(disease, plant, confidence),
	}, nil
}

// model returns the cached classifier for the plant, loading it at
// most once even under concurrent requests.
func (s *Service) model(ctx context.Context, plant string) (*domain.Model, error) {
	for {
		s.mu.Lock()
		if model, ok := s.models[plant]; ok {
			s.mu.Unlock()
			return model, nil
		}
		if waiting, ok := s.loading[plant]; ok {
			s.mu.Unlock()
			select {
			case <-waiting:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}

		done := make(chan struct{})
		s.loading[plant] = done
		s.mu.Unlock()

		entry, err := s.registry.Resolve(plant)
		var model *domain.Model
		if err == nil {
			model, err = s.loader.Load(ctx, entry)
		}

		s.mu.Lock()
		delete(s.loading, plant)
		if err == nil {
			s.models[plant] = model
		}
		s.mu.Unlock()
		close(done)

		if err != nil {
			return nil, err
		}
		s.metrics.RecordModelLoad(ctx, plant)
		return model, nil
	}
}

func additionalInfo(disease, plant string, confidence float64) string {
	switch {
	case strings.Contains(strings.ToLower(disease), "healthy"):
		return fmt.Sprintf("Your %s plant appears healthy with %.2f%% confidence. Continue regular care practices.", plant, confidence*100)
	case confidence > 0.8:
		return fmt.Sprintf("High confidence detection of %s in %s. Immediate treatment recommended.", disease, plant)
	case confidence > 0.6:
		return fmt.Sprintf("Moderate confidence detection of %s in %s. Monitor closely and apply treatments.", disease, plant)
	default:
		return "Low confidence detection. Please verify the diagnosis and consider consulting an agricultural expert."
	}
}
