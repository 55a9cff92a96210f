package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newImagenServer(t *testing.T, handler http.HandlerFunc) RESTImageConfig {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return RESTImageConfig{
		APIKey:  "test-key",
		Model:   "imagen-3.0-generate-002",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}
}

func TestRESTImageModel_Generate(t *testing.T) {
	cfg := newImagenServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/imagen-3.0-generate-002:predict", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body predictRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) && assert.Len(t, body.Instances, 1) {
			assert.Equal(t, "a lighthouse at dawn", body.Instances[0].Prompt)
		}
		assert.Equal(t, 1, body.Parameters.SampleCount)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]string{{
				"bytesBase64Encoded": base64.StdEncoding.EncodeToString(pngHeader),
				"mimeType":           "image/png",
			}},
		})
	})

	m := NewRESTImageModel(cfg)
	assert.Equal(t, "imagen-3.0-generate-002", m.Name())

	img, err := m.Generate(context.Background(), "a lighthouse at dawn")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, img.Data)
	assert.Equal(t, "image/png", img.MimeType)
}

func TestRESTImageModel_VendorError(t *testing.T) {
	cfg := newImagenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Imagen API is only accessible to billed users","status":"FAILED_PRECONDITION"}}`))
	})

	_, err := NewRESTImageModel(cfg).Generate(context.Background(), "x")
	require.Error(t, err)

	var vendorErr *VendorError
	require.True(t, errors.As(err, &vendorErr))
	assert.Equal(t, 400, vendorErr.Code)
	assert.Equal(t, "Imagen API is only accessible to billed users", vendorErr.Message)
}

func TestRESTImageModel_FilteredResponse(t *testing.T) {
	cfg := newImagenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[{"raiFilteredReason":"filtered by safety settings"}]}`))
	})

	_, err := NewRESTImageModel(cfg).Generate(context.Background(), "x")

	var vendorErr *VendorError
	require.True(t, errors.As(err, &vendorErr))
	assert.Equal(t, "filtered by safety settings", vendorErr.Message)
}

func TestRESTImageModel_NoAPIKey(t *testing.T) {
	m := NewRESTImageModel(RESTImageConfig{Model: "imagen-3.0-generate-002"})

	_, err := m.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrModelNotConfigured)
}

func TestRESTImageModel_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewRESTImageModel(RESTImageConfig{APIKey: "k", Model: "m", BaseURL: url, Timeout: time.Second}).
		Generate(context.Background(), "x")
	require.Error(t, err)

	var vendorErr *VendorError
	assert.False(t, errors.As(err, &vendorErr), "网络错误不应归类为服务商错误")
}
