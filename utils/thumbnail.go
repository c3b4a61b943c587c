package utils

import (
	"context"
	"lms/config"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadThumbnail pushes a course thumbnail to Cloudinary and returns its
// secure URL. When no CLOUDINARY_URL is configured the file is stored
// locally and served through the static handler instead.
func UploadThumbnail(file *multipart.FileHeader) (string, error) {
	if config.AppConfig.CloudinaryURL == "" {
		path, err := SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			return "", err
		}
		return GetFileURL(path), nil
	}

	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := cld.Upload.Upload(context.Background(), src, uploader.UploadParams{
		Folder: "course-thumbnails",
	})
	if err != nil {
		return "", err
	}

	return resp.SecureURL, nil
}
