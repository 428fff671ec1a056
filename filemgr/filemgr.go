package filemgr

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	planPicDir   = "./static/planpic"
	thumbDir     = "./static/planpic/thumb"
	maxImageSize = 10 << 20 // 10 MiB per file
	thumbWidth   = 320
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var ErrUnsupportedImage = errors.New("filemgr: unsupported image format")

func ensureDirs() error {
	if err := os.MkdirAll(planPicDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(thumbDir, 0o755)
}

// SavePlanImage stores one uploaded image, re-encoded as JPEG, plus a
// thumbnail. It returns the public URL path of the stored image.
func SavePlanImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxImageSize {
		return "", fmt.Errorf("filemgr: image exceeds %d bytes", maxImageSize)
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedImage
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", ErrUnsupportedImage
	}

	name := uuid.New().String() + ".jpg"
	fullPath := filepath.Join(planPicDir, name)
	if err := writeJPEG(fullPath, img, 90); err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := writeJPEG(filepath.Join(thumbDir, name), thumb, 80); err != nil {
		os.Remove(fullPath)
		return "", err
	}

	return "/static/planpic/" + name, nil
}

func writeJPEG(path string, img image.Image, quality int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
}

// RemovePlanImage deletes a stored image and its thumbnail. Unknown
// paths are ignored.
func RemovePlanImage(urlPath string) {
	name := filepath.Base(urlPath)
	if name == "." || name == "/" {
		return
	}
	os.Remove(filepath.Join(planPicDir, name))
	os.Remove(filepath.Join(thumbDir, name))
}
