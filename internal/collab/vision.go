package collab

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// maxLabels bounds the number of annotations requested per image.
const maxLabels = 10

// Vision implements VisionLabeler using Cloud Vision label detection.
type Vision struct {
	client *vision.ImageAnnotatorClient
}

// NewVision creates a Cloud Vision labeler authenticated with the given
// service-account JSON.
func NewVision(ctx context.Context, credentialsJSON []byte) (*Vision, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return &Vision{client: client}, nil
}

// LabelImage returns scored labels for the image bytes, best match first.
func (v *Vision) LabelImage(ctx context.Context, image []byte) ([]Label, error) {
	annotations, err := v.client.DetectLabels(ctx, &visionpb.Image{Content: image}, nil, maxLabels)
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}
	labels := make([]Label, 0, len(annotations))
	for _, a := range annotations {
		labels = append(labels, Label{
			Description: a.GetDescription(),
			Score:       float64(a.GetScore()),
		})
	}
	return labels, nil
}

// Close releases the underlying connection.
func (v *Vision) Close() error {
	return v.client.Close()
}
