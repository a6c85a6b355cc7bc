package database

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// LoadAWSConfig loads the default credential chain for the region
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}

// NewDynamoClient builds a DynamoDB client; endpoint overrides the AWS
// endpoint for DynamoDB Local.
func NewDynamoClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	log.Println("Initializing DynamoDB client...")
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// NewS3Client builds the S3 client used for ticket archiving
func NewS3Client(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg)
}
