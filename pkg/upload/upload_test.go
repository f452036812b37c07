package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "photo.png", "photo.png"},
		{"Spaces", "my photo.png", "my_photo.png"},
		{"PathStripped", "/etc/passwd", "passwd"},
		{"WindowsPathStripped", "C:\\Users\\me\\pic.jpg", "pic.jpg"},
		{"TraversalStripped", "../../secret.txt", "secret.txt"},
		{"LeadingDotsRemoved", ".hidden", "hidden"},
		{"SpecialCharsDropped", "pic<>:?*.png", "pic.png"},
		{"Unicode", "图片.png", "png"},
		{"Empty", "", ""},
		{"OnlyDots", "..", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}

func TestSaverSave(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(dir, 1024)
	require.NoError(t, err)

	t.Run("WritesFile", func(t *testing.T) {
		fileHeader := makeFileHeader(t, "avatar.png", []byte("png-bytes"))
		filename, err := saver.Save(fileHeader)
		require.NoError(t, err)
		assert.Equal(t, "avatar.png", filename)

		data, err := os.ReadFile(filepath.Join(dir, "avatar.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("SameNameOverwrites", func(t *testing.T) {
		fileHeader := makeFileHeader(t, "avatar.png", []byte("second-upload"))
		_, err := saver.Save(fileHeader)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "avatar.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("second-upload"), data)
	})

	t.Run("TooLarge", func(t *testing.T) {
		fileHeader := makeFileHeader(t, "big.png", bytes.Repeat([]byte("x"), 2048))
		_, err := saver.Save(fileHeader)
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("UnusableFilename", func(t *testing.T) {
		fileHeader := makeFileHeader(t, "..", []byte("data"))
		_, err := saver.Save(fileHeader)
		assert.ErrorIs(t, err, ErrEmptyFilename)
	})
}

// makeFileHeader 构造一个真实的multipart.FileHeader
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
