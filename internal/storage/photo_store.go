package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscred "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/AtelierAutoPro/garage-manager/internal/config"
)

// Les photos produits sont recodées en WebP (bord max 1280 px) avant d'être
// poussées vers le stockage S3 compatible.
const (
	maxEdge     = 1280
	webpQuality = 85
)

type PhotoStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			awscred.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &PhotoStore{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

type StoredPhoto struct {
	Key         string
	URL         string
	ContentType string
}

// Put décode l'image (jpeg/png), la réduit si besoin, la recode en WebP et
// l'envoie sous produits/<id>/<uuid>.webp.
func (s *PhotoStore) Put(ctx context.Context, produitID uint, r io.Reader) (*StoredPhoto, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	src = shrink(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("produits/%d/%s.webp", produitID, uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &StoredPhoto{
		Key:         key,
		URL:         s.publicURL + "/" + key,
		ContentType: "image/webp",
	}, nil
}

func (s *PhotoStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func shrink(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	scale := float64(maxEdge) / float64(w)
	if h > w {
		scale = float64(maxEdge) / float64(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
