package service

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/captavi/lambda-s3-deploy/internal/repository"
	dto "github.com/captavi/lambda-s3-deploy/pkg/types"
)

// TriggerService manipula a configuração de notificação de eventos do bucket.
type TriggerService struct {
	S3Repo *repository.S3Repository
}

// ConfigureBucketTrigger garante que o bucket tenha exatamente uma regra de
// ObjectCreated apontando para a função. A configuração inteira é lida,
// ajustada e gravada de volta; destinos SNS/SQS/EventBridge de terceiros são
// preservados. A escrita não é atômica frente a escritores concorrentes.
func (s *TriggerService) ConfigureBucketTrigger(ctx context.Context, tc *dto.TriggerConfig, functionArn string) error {
	cur, err := s.S3Repo.GetNotificationConfiguration(ctx, tc.Bucket)
	if err != nil {
		return err
	}

	// Remove qualquer regra antiga para o mesmo ARN, mantendo só a mais nova
	rules := withoutTarget(cur.LambdaFunctionConfigurations, functionArn)
	rules = append(rules, newObjectCreatedRule(functionArn, tc.Prefix, tc.Suffix))

	return s.S3Repo.PutNotificationConfiguration(ctx, tc.Bucket, &s3types.NotificationConfiguration{
		LambdaFunctionConfigurations: rules,
		TopicConfigurations:          cur.TopicConfigurations,
		QueueConfigurations:          cur.QueueConfigurations,
		EventBridgeConfiguration:     cur.EventBridgeConfiguration,
	})
}

// RemoveBucketTrigger retira a regra da função da configuração do bucket.
func (s *TriggerService) RemoveBucketTrigger(ctx context.Context, bucket, functionArn string) error {
	cur, err := s.S3Repo.GetNotificationConfiguration(ctx, bucket)
	if err != nil {
		return err
	}

	rules := withoutTarget(cur.LambdaFunctionConfigurations, functionArn)
	if len(rules) == len(cur.LambdaFunctionConfigurations) {
		// Nada a remover
		return nil
	}

	return s.S3Repo.PutNotificationConfiguration(ctx, bucket, &s3types.NotificationConfiguration{
		LambdaFunctionConfigurations: rules,
		TopicConfigurations:          cur.TopicConfigurations,
		QueueConfigurations:          cur.QueueConfigurations,
		EventBridgeConfiguration:     cur.EventBridgeConfiguration,
	})
}

// --- Funções auxiliares ---

func withoutTarget(rules []s3types.LambdaFunctionConfiguration, functionArn string) []s3types.LambdaFunctionConfiguration {
	out := make([]s3types.LambdaFunctionConfiguration, 0, len(rules))
	for _, r := range rules {
		if aws.ToString(r.LambdaFunctionArn) == functionArn {
			continue
		}
		out = append(out, r)
	}
	return out
}

func newObjectCreatedRule(functionArn, prefix, suffix string) s3types.LambdaFunctionConfiguration {
	rule := s3types.LambdaFunctionConfiguration{
		LambdaFunctionArn: aws.String(functionArn),
		Events:            []s3types.Event{s3types.EventS3ObjectCreated},
	}

	var filters []s3types.FilterRule
	if prefix != "" {
		filters = append(filters, s3types.FilterRule{
			Name:  s3types.FilterRuleNamePrefix,
			Value: aws.String(prefix),
		})
	}
	if suffix != "" {
		filters = append(filters, s3types.FilterRule{
			Name:  s3types.FilterRuleNameSuffix,
			Value: aws.String(suffix),
		})
	}
	if len(filters) > 0 {
		rule.Filter = &s3types.NotificationConfigurationFilter{
			Key: &s3types.S3KeyFilter{FilterRules: filters},
		}
	}
	return rule
}
