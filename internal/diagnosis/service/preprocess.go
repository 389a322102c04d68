package service

import (
	"bytes"
	"image"
	"math"

	_ "image/jpeg"
	_ "image/png"

	"github.com/agrimart/agrimart/internal/diagnosis/domain"
	"golang.org/x/image/draw"
)

const inputSize = 224

// ImageNet channel statistics used when the classifiers were trained.
var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

// tensorFromImage decodes, resizes to 224x224 and normalizes into an
// NCHW float32 tensor.
func tensorFromImage(data []byte) ([]float32, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage
	}

	resized := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Over, nil)

	tensor := make([]float32, 3*inputSize*inputSize)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			offset := resized.PixOffset(x, y)
			idx := y*inputSize + x
			for c := 0; c < 3; c++ {
				value := float32(resized.Pix[offset+c]) / 255.0
				tensor[c*inputSize*inputSize+idx] = (value - channelMean[c]) / channelStd[c]
			}
		}
	}
	return tensor, nil
}

// softmax converts logits into probabilities.
func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}

	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v - max))
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// argmax returns the highest probability and its index.
func argmax(probs []float64) (int, float64) {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best, probs[best]
}
