package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"bluekey_backend/pkg/utils/image"
	"bluekey_backend/pkg/utils/validation"
)

var (
	s3Client   *s3.Client
	bucketName string
	region     string
)

func InitStorage(bucket, awsRegion string) error {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	bucketName = bucket
	region = awsRegion
	return nil
}

// UploadPropertyImage validates, re-encodes and uploads a listing photo.
// Returns the public URL.
func UploadPropertyImage(file *multipart.FileHeader, propertyID uint) (string, error) {
	if err := validation.ValidateImage(file); err != nil {
		return "", err
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("properties/%d/%s", propertyID, uuid.NewString())
	return putObject(key, buf, contentType)
}

// UploadAvatar uploads a staff profile picture.
func UploadAvatar(file *multipart.FileHeader, staffID uint) (string, error) {
	if err := validation.ValidateImage(file); err != nil {
		return "", err
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%s", staffID, uuid.NewString())
	return putObject(key, buf, contentType)
}

func putObject(key string, buf *bytes.Buffer, contentType string) (string, error) {
	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, region, key), nil
}

// DeleteImage removes an object given its public URL.
func DeleteImage(imageURL string) error {
	parts := strings.Split(imageURL, "/")
	if len(parts) < 4 {
		return fmt.Errorf("malformed image URL: %s", imageURL)
	}
	key := strings.Join(parts[3:], "/")

	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})

	return err
}
