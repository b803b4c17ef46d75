package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"voice-relay/internal/speech"
)

type mockTranscriber struct {
	transcript string
	err        error
	lastAudio  []byte
	lastType   string
}

func (m *mockTranscriber) Transcribe(_ context.Context, audio []byte, contentType string) (string, error) {
	m.lastAudio = audio
	m.lastType = contentType
	return m.transcript, m.err
}

type mockSynthesizer struct {
	audio []byte
	err   error
	calls int
}

func (m *mockSynthesizer) Synthesize(_ context.Context, _ string) ([]byte, error) {
	m.calls++
	return m.audio, m.err
}

func (m *mockSynthesizer) Model() string { return "aura-test" }

func multipartAudioRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="clip.webm"`)
	h.Set("Content-Type", "audio/webm")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write(data)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSpeechHandler_Transcribe(t *testing.T) {
	r, deps := setupRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartAudioRequest(t, "audio", []byte("voz")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]string
	decodeBody(t, rec, &out)
	if out["transcript"] != "hola" {
		t.Fatalf("unexpected transcript %+v", out)
	}
	if string(deps.transcriber.lastAudio) != "voz" || deps.transcriber.lastType != "audio/webm" {
		t.Fatalf("unexpected forwarded audio %q %q", deps.transcriber.lastAudio, deps.transcriber.lastType)
	}
}

func TestSpeechHandler_TranscribeMissingFile(t *testing.T) {
	r, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartAudioRequest(t, "other", []byte("voz")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var out map[string]string
	decodeBody(t, rec, &out)
	if out["error"] != "No audio file provided" {
		t.Fatalf("unexpected error %+v", out)
	}
}

func TestSpeechHandler_TranscribeUpstreamFailure(t *testing.T) {
	r, deps := setupRouter(t)
	deps.transcriber.err = speech.ErrTranscriptionFailed

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartAudioRequest(t, "audio", []byte("voz")))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var out map[string]string
	decodeBody(t, rec, &out)
	if out["error"] != "Transcription failed" {
		t.Fatalf("unexpected error %+v", out)
	}
}

func TestSpeechHandler_TextToSpeech(t *testing.T) {
	r, _ := setupRouter(t)

	rec := performRequest(r, http.MethodPost, "/api/text-to-speech", map[string]string{"text": "hola"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var out map[string]string
	decodeBody(t, rec, &out)
	if out["audio"] != base64.StdEncoding.EncodeToString([]byte("mp3")) {
		t.Fatalf("unexpected audio %+v", out)
	}
}

func TestSpeechHandler_TextToSpeechErrors(t *testing.T) {
	r, deps := setupRouter(t)

	rec := performRequest(r, http.MethodPost, "/api/text-to-speech", map[string]string{"text": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var out map[string]string
	decodeBody(t, rec, &out)
	if out["error"] != "No text provided" {
		t.Fatalf("unexpected error %+v", out)
	}
	if deps.synthesizer.calls != 0 {
		t.Fatalf("expected no provider call for empty text")
	}

	deps.synthesizer.err = speech.ErrSynthesisFailed
	rec = performRequest(r, http.MethodPost, "/api/text-to-speech", map[string]string{"text": "hola"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	deps.synthesizer.err = speech.ErrNotConfigured
	rec = performRequest(r, http.MethodPost, "/api/text-to-speech", map[string]string{"text": "hola"})
	decodeBody(t, rec, &out)
	if rec.Code != http.StatusInternalServerError || out["error"] != "Deepgram API key not configured" {
		t.Fatalf("unexpected config error response %d %+v", rec.Code, out)
	}
}
