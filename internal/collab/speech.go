package collab

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// Browser audio capture ships WebM/Opus at 48kHz; the recognizer config must
// match or transcription silently returns nothing.
const sampleRateHertz = 48000

// SpeechToText implements Transcriber using Cloud Speech-to-Text.
type SpeechToText struct {
	client *speech.Client
}

// NewSpeechToText creates a Cloud Speech client authenticated with the given
// service-account JSON.
func NewSpeechToText(ctx context.Context, credentialsJSON []byte) (*SpeechToText, error) {
	client, err := speech.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &SpeechToText{client: client}, nil
}

// Transcribe returns the top transcript for the audio, or "" when nothing was
// recognized.
func (s *SpeechToText) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz: sampleRateHertz,
			LanguageCode:    languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", nil
	}
	return resp.Results[0].Alternatives[0].Transcript, nil
}

// Close releases the underlying connection.
func (s *SpeechToText) Close() error {
	return s.client.Close()
}
