package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/captavi/lambda-s3-deploy/internal/repository"
)

const basePolicyArn = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"

// IAMService manipula a lógica de negócio para Roles e Policies.
type IAMService struct {
	IAMRepo *repository.IAMRepository
	Logger  *slog.Logger

	// Sobrescrito nos testes para não dormir de verdade.
	PropagationWait time.Duration
}

// ExecutionRoleName devolve o nome da execution role gerenciada pela
// ferramenta para uma função.
func ExecutionRoleName(functionName string) string {
	return fmt.Sprintf("%s-execution-role", functionName)
}

// EnsureRole garante que a execution role exista e anexa as políticas
// necessárias. Retorna o ARN da role.
func (s *IAMService) EnsureRole(ctx context.Context, functionName string, policyARNs []string) (string, error) {
	roleName := ExecutionRoleName(functionName)

	role, err := s.IAMRepo.GetRole(ctx, roleName)
	if err != nil {
		return "", err
	}

	var roleArn *string
	created := false
	if role == nil {
		roleArn, err = s.IAMRepo.CreateRole(ctx, roleName)
		if err != nil {
			return "", err
		}
		created = true
	} else {
		roleArn = role.Arn
	}

	// Política base (CloudWatch Logs)
	if err := s.IAMRepo.AttachPolicy(ctx, roleName, basePolicyArn); err != nil {
		return "", err
	}

	for _, arn := range policyARNs {
		if err := s.IAMRepo.AttachPolicy(ctx, roleName, arn); err != nil {
			return "", fmt.Errorf("failed to attach policy %s: %w", arn, err)
		}
	}

	// Uma role recém-criada ainda não é visível para o serviço Lambda;
	// espera a propagação antes do CreateFunction.
	if created {
		wait := s.PropagationWait
		if wait == 0 {
			wait = 10 * time.Second
		}
		s.log().Info("waiting for IAM role propagation", "role", roleName, "wait", wait)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	return aws.ToString(roleArn), nil
}

// DeleteRoleAndPolicies desanexa as políticas e deleta a Role.
func (s *IAMService) DeleteRoleAndPolicies(ctx context.Context, roleName string, policyARNs []string) error {
	for _, arn := range policyARNs {
		s.IAMRepo.DetachPolicy(ctx, roleName, arn)
	}
	s.IAMRepo.DetachPolicy(ctx, roleName, basePolicyArn)

	return s.IAMRepo.DeleteRole(ctx, roleName)
}

func (s *IAMService) log() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
