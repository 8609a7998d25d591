package netx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipartFile_RoundTripsThroughParser(t *testing.T) {
	body, ct, err := MultipartFile("file", `red "tee".png`, "image/png", []byte("pngdata"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/outfit/upload-outfit", body)
	req.Header.Set("Content-Type", ct)

	require.NoError(t, req.ParseMultipartForm(1<<20))
	f, hdr, err := req.FormFile("file")
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, `red "tee".png`, hdr.Filename)
	require.Equal(t, "image/png", hdr.Header.Get("Content-Type"))

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "pngdata", string(got))
}

func TestMultipartFile_DefaultContentType(t *testing.T) {
	body, ct, err := MultipartFile("file", "blob", "", []byte{1, 2})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ct)
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, hdr, err := req.FormFile("file")
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", hdr.Header.Get("Content-Type"))
}
