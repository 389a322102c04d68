package domain

import (
	"context"
	"errors"
)

// MaxImageBytes caps uploads before any model work happens.
const MaxImageBytes = 10 * 1024 * 1024

// SupportedPlants is the fixed set of plants with trained classifiers.
var SupportedPlants = []string{
	"beans", "chilli", "coconut", "coffee", "cucumber",
	"lettuce", "mango", "onion", "potato", "rice",
	"sugarcane", "tobacco", "tomato", "wheat",
}

// Entry points at the artifacts backing one plant classifier.
type Entry struct {
	Plant          string
	ModelPath      string
	ClassNamesPath string
	TreatmentsPath string
}

// Session runs a forward pass over a 1x3x224x224 NCHW tensor and
// returns the raw class logits.
type Session interface {
	Run(input []float32) ([]float32, error)
	Close() error
}

// Model is a loaded classifier with its class names and treatments.
type Model struct {
	Session    Session
	ClassNames []string
	Treatments map[string][]string
}

// Loader builds a Model from a registry entry.
type Loader interface {
	Load(ctx context.Context, entry Entry) (*Model, error)
}

// Result is the prediction payload returned to clients.
type Result struct {
	PlantType      string   `json:"plant_type"`
	Disease        string   `json:"disease"`
	Confidence     string   `json:"confidence"`
	Treatments     []string `json:"treatments"`
	AdditionalInfo string   `json:"additional_info"`
}

type Service interface {
	Analyze(ctx context.Context, plantType string, imageData []byte) (*Result, error)
}

var (
	ErrUnsupportedPlant = errors.New("unsupported_plant_type")
	ErrImageTooLarge    = errors.New("image_too_large")
	ErrInvalidImage     = errors.New("invalid_image")
	ErrModelUnavailable = errors.New("model_unavailable")
)
