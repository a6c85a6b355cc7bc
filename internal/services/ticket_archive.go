package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the part of the S3 client the archive needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// TicketArchive copies uploaded ticket images to S3
type TicketArchive struct {
	client ObjectPutter
	bucket string
}

func NewTicketArchive(client ObjectPutter, bucket string) *TicketArchive {
	return &TicketArchive{client: client, bucket: bucket}
}

var ticketExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Archive stores the decoded ticket and returns its object key
func (a *TicketArchive) Archive(ctx context.Context, ticket string) (string, error) {
	data, contentType, err := DecodeTicket(ticket)
	if err != nil {
		return "", err
	}

	ext, ok := ticketExtensions[contentType]
	if !ok {
		ext = ".bin"
	}
	key := fmt.Sprintf("tickets/%s/%s%s", time.Now().UTC().Format("2006/01/02"), uuid.NewString(), ext)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload ticket to bucket '%s': %w", a.bucket, err)
	}

	log.Printf("🗂️  Ticket archived to s3://%s/%s", a.bucket, key)
	return key, nil
}

// DecodeTicket decodes a base64 ticket, with or without a data URL prefix,
// and sniffs its content type.
func DecodeTicket(ticket string) ([]byte, string, error) {
	encoded := strings.TrimSpace(ticket)
	if strings.HasPrefix(encoded, "data:") {
		if _, rest, ok := strings.Cut(encoded, ","); ok {
			encoded = rest
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, "", fmt.Errorf("ticket is not valid base64: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("ticket is empty")
	}

	contentType := http.DetectContentType(data)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return data, contentType, nil
}
