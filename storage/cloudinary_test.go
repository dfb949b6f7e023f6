package storage

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudinary(handler http.HandlerFunc) (*Cloudinary, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := &Cloudinary{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "dreamnest",
		BaseURL:   srv.URL,
		Client:    srv.Client(),
	}
	return client, srv
}

func TestUploadSendsSignedForm(t *testing.T) {
	var gotPath, gotPublicID, gotSignature, gotTimestamp string

	client, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotPublicID = r.PostFormValue("public_id")
		gotSignature = r.PostFormValue("signature")
		gotTimestamp = r.PostFormValue("timestamp")
		assert.Equal(t, "key", r.PostFormValue("api_key"))
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/pic.jpg"}`))
	})
	defer srv.Close()

	url, err := client.Upload([]byte("image-bytes"), "pic")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/pic.jpg", url)

	assert.Equal(t, "/image/upload", gotPath)
	assert.Equal(t, "dreamnest/pic", gotPublicID)

	wantSignature := fmt.Sprintf("%x", sha1.Sum([]byte(
		fmt.Sprintf("public_id=%s&timestamp=%ssecret", gotPublicID, gotTimestamp))))
	assert.Equal(t, wantSignature, gotSignature)
}

func TestUploadEmptyImage(t *testing.T) {
	client, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty image")
	})
	defer srv.Close()

	_, err := client.Upload(nil, "pic")
	require.Error(t, err)
}

func TestUploadFailureStatus(t *testing.T) {
	client, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	defer srv.Close()

	_, err := client.Upload([]byte("image-bytes"), "pic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestUploadCloudinaryError(t *testing.T) {
	client, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"Invalid signature"}}`))
	})
	defer srv.Close()

	_, err := client.Upload([]byte("image-bytes"), "pic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid signature")
}

func TestDestroy(t *testing.T) {
	client, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/image/destroy", r.URL.Path)
		assert.Equal(t, "dreamnest/pic", r.PostFormValue("public_id"))
		w.Write([]byte(`{"result":"ok"}`))
	})
	defer srv.Close()

	err := client.Destroy("https://res.cloudinary.com/demo/image/upload/v1/pic.jpg")
	require.NoError(t, err)
}

func TestDestroyNotFound(t *testing.T) {
	client, srv := newTestCloudinary(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"not found"}`))
	})
	defer srv.Close()

	err := client.Destroy("https://res.cloudinary.com/demo/image/upload/v1/pic.jpg")
	require.Error(t, err)
}
