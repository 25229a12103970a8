package collab

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// TextToSpeech implements SpeechSynthesizer using Cloud Text-to-Speech.
type TextToSpeech struct {
	client *texttospeech.Client
}

// NewTextToSpeech creates a Cloud Text-to-Speech client authenticated with the
// given service-account JSON.
func NewTextToSpeech(ctx context.Context, credentialsJSON []byte) (*TextToSpeech, error) {
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	return &TextToSpeech{client: client}, nil
}

// Synthesize renders the text as MP3 audio with a neutral voice.
func (t *TextToSpeech) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	resp, err := t.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.AudioContent, nil
}

// Close releases the underlying connection.
func (t *TextToSpeech) Close() error {
	return t.client.Close()
}
