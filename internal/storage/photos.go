package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/candraczapansky/software-sub012/internal/config"
	"github.com/candraczapansky/software-sub012/internal/httperr"
)

const (
	maxPhotoEdge = 1600
	webpQuality  = 85
)

// PhotoStore converts appointment photos to webp and uploads them to S3.
type PhotoStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			"",
		),
	})

	return &PhotoStore{
		client: client,
		bucket: cfg.PhotoBucket,
		region: cfg.AWSRegion,
	}
}

// Save decodes, downscales and re-encodes the photo, then uploads it.
// Returns the object key and public URL.
func (p *PhotoStore) Save(ctx context.Context, appointmentID uint, r io.Reader) (string, string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", "", httperr.ErrBusiness("invalid_image")
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", "", err
	}

	key := fmt.Sprintf(
		"appointments/%d/%d.webp",
		appointmentID,
		time.Now().UnixNano(),
	)

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
	return key, url, nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPhotoEdge && h <= maxPhotoEdge {
		return img
	}

	scale := float64(maxPhotoEdge) / float64(w)
	if h > w {
		scale = float64(maxPhotoEdge) / float64(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
