package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agrimart/agrimart/internal/diagnosis/domain"
)

// Registry maps plant types to their checkpoint and class-data files.
// Unknown plants fail closed.
type Registry struct {
	modelDir     string
	classDataDir string
	supported    map[string]struct{}
}

func New(modelDir, classDataDir string) *Registry {
	supported := make(map[string]struct{}, len(domain.SupportedPlants))
	for _, plant := range domain.SupportedPlants {
		supported[plant] = struct{}{}
	}
	return &Registry{
		modelDir:     modelDir,
		classDataDir: classDataDir,
		supported:    supported,
	}
}

// Supported reports whether the plant has a registered classifier.
func (r *Registry) Supported(plant string) bool {
	_, ok := r.supported[strings.ToLower(strings.TrimSpace(plant))]
	return ok
}

// Resolve returns the artifact paths for a plant. The checkpoint falls
// back to the first *<plant>*.onnx match when the canonical file name
// is absent.
func (r *Registry) Resolve(plant string) (domain.Entry, error) {
	key := strings.ToLower(strings.TrimSpace(plant))
	if _, ok := r.supported[key]; !ok {
		return domain.Entry{}, domain.ErrUnsupportedPlant
	}

	modelPath := filepath.Join(r.modelDir, key+"_classifier.onnx")
	if _, err := os.Stat(modelPath); err != nil {
		matches, globErr := filepath.Glob(filepath.Join(r.modelDir, "*"+key+"*.onnx"))
		if globErr != nil || len(matches) == 0 {
			return domain.Entry{}, fmt.Errorf("%w: checkpoint not found for %s", domain.ErrModelUnavailable, key)
		}
		modelPath = matches[0]
	}

	return domain.Entry{
		Plant:          key,
		ModelPath:      modelPath,
		ClassNamesPath: filepath.Join(r.classDataDir, key+"_classnames.json"),
		TreatmentsPath: filepath.Join(r.classDataDir, key+"_treatments.json"),
	}, nil
}
