package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agrimart/agrimart/internal/diagnosis/domain"
	"github.com/stretchr/testify/require"
)

func TestResolveExactCheckpoint(t *testing.T) {
	modelDir := t.TempDir()
	classDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "rice_classifier.onnx"), []byte("stub"), 0o644))

	r := New(modelDir, classDir)
	entry, err := r.Resolve("Rice")
	require.NoError(t, err)
	require.Equal(t, "rice", entry.Plant)
	require.Equal(t, filepath.Join(modelDir, "rice_classifier.onnx"), entry.ModelPath)
	require.Equal(t, filepath.Join(classDir, "rice_classnames.json"), entry.ClassNamesPath)
	require.Equal(t, filepath.Join(classDir, "rice_treatments.json"), entry.TreatmentsPath)
}

func TestResolveGlobFallback(t *testing.T) {
	modelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "resnet18_wheat_v3.onnx"), []byte("stub"), 0o644))

	r := New(modelDir, t.TempDir())
	entry, err := r.Resolve("wheat")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(modelDir, "resnet18_wheat_v3.onnx"), entry.ModelPath)
}

func TestResolveFailsClosed(t *testing.T) {
	r := New(t.TempDir(), t.TempDir())

	_, err := r.Resolve("cactus")
	require.ErrorIs(t, err, domain.ErrUnsupportedPlant)

	_, err = r.Resolve("mango")
	require.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestSupported(t *testing.T) {
	r := New(t.TempDir(), t.TempDir())
	require.True(t, r.Supported("Coconut"))
	require.True(t, r.Supported(" chilli "))
	require.False(t, r.Supported("bamboo"))
}
