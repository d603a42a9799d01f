package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// CWLogsRepository encapsula operações CRUD da AWS CloudWatch Logs.
type CWLogsRepository struct {
	Client CWLogsAPI
}

// CreateLogGroupIfNotExists cria um Log Group e define a retenção.
func (r *CWLogsRepository) CreateLogGroupIfNotExists(ctx context.Context, name string, retentionDays int32) error {
	_, err := r.Client.CreateLogGroup(ctx, &cw.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		// Se já existe, ignora e continua para definir a retenção
		if !isAPIErrorCode(err, "ResourceAlreadyExistsException") {
			return fmt.Errorf("CreateLogGroup: %w", err)
		}
	}

	// Tenta definir a retenção (pode falhar por eventual consistência)
	err = r.retry(ctx, 6, 300*time.Millisecond, func() error {
		_, perr := r.Client.PutRetentionPolicy(ctx, &cw.PutRetentionPolicyInput{
			LogGroupName:    aws.String(name),
			RetentionInDays: aws.Int32(retentionDays),
		})
		// Se a retenção já estiver definida (InvalidParameterException), considera sucesso
		if isAPIErrorCode(perr, "InvalidParameterException") {
			return nil
		}
		return perr
	})
	if err != nil {
		return fmt.Errorf("PutRetentionPolicy failed after retries: %w", err)
	}
	return nil
}

// DeleteLogGroup deleta o Log Group.
func (r *CWLogsRepository) DeleteLogGroup(ctx context.Context, logGroupName string) error {
	_, err := r.Client.DeleteLogGroup(ctx, &cw.DeleteLogGroupInput{
		LogGroupName: aws.String(logGroupName),
	})
	if err != nil && !isAPIErrorCode(err, "ResourceNotFoundException") {
		return fmt.Errorf("DeleteLogGroup failed: %w", err)
	}
	return nil
}

// --- Métodos Privados ---

// retry helper com backoff exponencial
func (r *CWLogsRepository) retry(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	sleep := initial
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
			sleep = sleep * 2
		}
	}
	return lastErr
}
