package content

import (
	"context"
	"fmt"

	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/openai"
)

// visionClient is the slice of the OpenAI client the analyzer uses.
type visionClient interface {
	DescribeImages(ctx context.Context, instruction string, images []openai.ImageInput) (string, error)
}

// Analyzer produces a free-text description of product images for the
// generation prompt.
type Analyzer struct {
	vision    visionClient
	maxImages int
	maxVision int
}

// NewAnalyzer constructs an image analyzer. maxImages caps how many URLs
// are considered at all, maxVision caps how many are attached to the
// vision request.
func NewAnalyzer(vision visionClient, maxImages, maxVision int) (*Analyzer, error) {
	if vision == nil {
		return nil, fmt.Errorf("vision client required")
	}
	if maxImages <= 0 {
		maxImages = 10
	}
	if maxVision <= 0 {
		maxVision = 5
	}
	return &Analyzer{vision: vision, maxImages: maxImages, maxVision: maxVision}, nil
}

// Analyze describes the given image URLs. No images is not an error, the
// pipeline simply proceeds without an image analysis section. A vision
// backend failure is a hard error; there is no retry and no partial result.
func (a *Analyzer) Analyze(ctx context.Context, imageURLs []string) (string, error) {
	if len(imageURLs) == 0 {
		return "", nil
	}

	if len(imageURLs) > a.maxImages {
		imageURLs = imageURLs[:a.maxImages]
	}
	if len(imageURLs) > a.maxVision {
		imageURLs = imageURLs[:a.maxVision]
	}

	images := make([]openai.ImageInput, 0, len(imageURLs))
	for _, u := range imageURLs {
		images = append(images, openai.ImageInput{URL: u})
	}

	description, err := a.vision.DescribeImages(ctx, analyzeImagesInstruction, images)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeGenerationFailed, err, "image analysis failed")
	}
	return description, nil
}
