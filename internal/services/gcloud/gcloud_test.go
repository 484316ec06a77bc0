package gcloud_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"audiocourse/internal/config"
	"audiocourse/internal/logging"
	"audiocourse/internal/services"
	"audiocourse/internal/services/gcloud"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Paths.CredentialsFile = ""
	return &cfg
}

func testOptions(url string) []option.ClientOption {
	return []option.ClientOption{
		option.WithEndpoint(url + "/"),
		option.WithoutAuthentication(),
	}
}

func TestTranslatorSendsBatchAndUnescapes(t *testing.T) {
	var got struct {
		Q      []string `json:"q"`
		Source string   `json:"source"`
		Target string   `json:"target"`
		Format string   `json:"format"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		translations := make([]map[string]string, 0, len(got.Q))
		for _, q := range got.Q {
			translations = append(translations, map[string]string{"translatedText": "en:" + q + " &amp; co"})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"translations": translations}})
	}))
	defer srv.Close()

	tr, err := gcloud.NewTranslator(context.Background(), testConfig(), "", logging.NewNop(), testOptions(srv.URL)...)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	out, err := tr.Translate(context.Background(), []string{"hola", "amigo"}, "es-MX", "en-US")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got.Source != "es" || got.Target != "en" || got.Format != "text" {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(out) != 2 || out[0] != "en:hola & co" || out[1] != "en:amigo & co" {
		t.Fatalf("unexpected translations %q", out)
	}
}

func TestTranslatorEmptyBatchSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	tr, err := gcloud.NewTranslator(context.Background(), testConfig(), "", nil, testOptions(srv.URL)...)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	out, err := tr.Translate(context.Background(), nil, "es", "en")
	if err != nil || out != nil {
		t.Fatalf("expected nil result, got %v %v", out, err)
	}
}

func TestTranslatorReportsRejectedRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API not enabled"}}`))
	}))
	defer srv.Close()

	tr, err := gcloud.NewTranslator(context.Background(), testConfig(), "", nil, testOptions(srv.URL)...)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	_, err = tr.Translate(context.Background(), []string{"hola"}, "es", "en")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status in error: %v", err)
	}
}

func TestSynthesizerRequestsOggOpus(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "text:synthesize") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("OggS-audio")),
		})
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Speech.VoiceGender = "FEMALE"
	s, err := gcloud.NewSynthesizer(context.Background(), cfg, "", nil, testOptions(srv.URL)...)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}
	audio, err := s.Synthesize(context.Background(), "¿Cómo estás?", "es")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "OggS-audio" {
		t.Fatalf("unexpected audio %q", audio)
	}
	voice := body["voice"].(map[string]any)
	if voice["languageCode"] != "es-ES" || voice["ssmlGender"] != "FEMALE" {
		t.Fatalf("unexpected voice %v", voice)
	}
	audioCfg := body["audioConfig"].(map[string]any)
	if audioCfg["audioEncoding"] != "OGG_OPUS" {
		t.Fatalf("unexpected audio config %v", audioCfg)
	}
	if !strings.Contains(s.VoiceKey(), "FEMALE") {
		t.Fatalf("voice key should include gender: %s", s.VoiceKey())
	}
}

func TestSynthesizerRejectsEmptyText(t *testing.T) {
	s, err := gcloud.NewSynthesizer(context.Background(), testConfig(), "", nil, testOptions("http://127.0.0.1:1")...)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), "  ", "es"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientOptions(t *testing.T) {
	if got := gcloud.ClientOptions("", ""); len(got) != 0 {
		t.Fatalf("expected no options, got %d", len(got))
	}
	if got := gcloud.ClientOptions("/keys/creds.json", "my-project-1"); len(got) != 2 {
		t.Fatalf("expected credentials and quota project, got %d", len(got))
	}
}
