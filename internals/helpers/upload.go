package helper

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
)

// MaxUploadSize caps any single upload (bytes).
const MaxUploadSize = 10 << 20 // 10 MiB

// SaveUpload validates the file against the kind's extension allow-list
// and stores it under UPLOAD_PATH/<subdir>/ with a random name. Returns
// the path relative to UPLOAD_PATH (that relative path is what goes in
// the DB).
func SaveUpload(c *fiber.Ctx, fh *multipart.FileHeader, kind, subdir string) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "File is too large")
	}
	if !constants.AllowedUploadExt(kind, fh.Filename) {
		return "", fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("File type %s is not allowed", strings.ToLower(filepath.Ext(fh.Filename))))
	}

	dir := filepath.Join(configs.UploadPath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// SaveImageResized stores an image upload downscaled so its longest side
// is at most maxDim px. Used for profile photos and badge icons; the
// original upload never hits disk.
func SaveImageResized(fh *multipart.FileHeader, subdir string, maxDim int) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "File is too large")
	}
	if !constants.IsImageExt(fh.Filename) {
		return "", fiber.NewError(fiber.StatusUnprocessableEntity, "Only image files are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnprocessableEntity, "File is not a readable image")
	}
	if img.Bounds().Dx() > maxDim || img.Bounds().Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	dir := filepath.Join(configs.UploadPath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(dir, name), imaging.JPEGQuality(85)); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// RemoveUpload deletes a previously stored relative path, ignoring
// missing files.
func RemoveUpload(relPath string) {
	if strings.TrimSpace(relPath) == "" {
		return
	}
	_ = os.Remove(filepath.Join(configs.UploadPath, filepath.FromSlash(relPath)))
}
