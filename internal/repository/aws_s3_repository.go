package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Repository encapsula operações de configuração de notificação de buckets.
type S3Repository struct {
	Client S3API
}

// GetNotificationConfiguration lê a configuração de notificação atual do
// bucket. O objeto retornado inclui também destinos SNS/SQS/EventBridge, que
// precisam ser preservados no write-back.
func (r *S3Repository) GetNotificationConfiguration(ctx context.Context, bucket string) (*s3.GetBucketNotificationConfigurationOutput, error) {
	out, err := r.Client.GetBucketNotificationConfiguration(ctx, &s3.GetBucketNotificationConfigurationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("GetBucketNotificationConfiguration failed: %w", err)
	}
	return out, nil
}

// PutNotificationConfiguration substitui a configuração de notificação do
// bucket. A API do S3 não tem merge parcial: quem escreve por último vence.
func (r *S3Repository) PutNotificationConfiguration(ctx context.Context, bucket string, cfg *types.NotificationConfiguration) error {
	_, err := r.Client.PutBucketNotificationConfiguration(ctx, &s3.PutBucketNotificationConfigurationInput{
		Bucket:                    aws.String(bucket),
		NotificationConfiguration: cfg,
	})
	if err != nil {
		return fmt.Errorf("PutBucketNotificationConfiguration failed: %w", err)
	}
	return nil
}
