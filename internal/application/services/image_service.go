package services

import (
	"fmt"

	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/media"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/security"
)

// ImageService accepts base64 uploads for image elements and hands them to
// the media processor, assigning each upload a ULID filename.
type ImageService struct {
	processor *media.ImageProcessor
	logger    *logging.ChanneledLogger
}

func NewImageService(processor *media.ImageProcessor, logger *logging.ChanneledLogger) *ImageService {
	return &ImageService{processor: processor, logger: logger}
}

// Upload stores a base64 data URI and returns the public media URL to set
// as the image element's src.
func (s *ImageService) Upload(data string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("image payload is empty")
	}

	log := s.logger.WithOperation(logging.ChannelMedia, "upload")
	name := security.GenerateULID()
	url, err := s.processor.ProcessBase64Image(data, name)
	if err != nil {
		log.Error("Image upload failed", "error", err)
		return "", err
	}

	log.Info("Image stored", "url", url)
	return url, nil
}

// Delete removes a previously uploaded image by its media URL.
func (s *ImageService) Delete(mediaURL string) error {
	if err := s.processor.DeleteImage(mediaURL); err != nil {
		s.logger.WithOperation(logging.ChannelMedia, "delete").Error("Image delete failed", "url", mediaURL, "error", err)
		return err
	}
	return nil
}
