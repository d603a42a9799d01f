package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/captavi/lambda-s3-deploy/internal/repository"
	dto "github.com/captavi/lambda-s3-deploy/pkg/types"
)

// InvokeStatementID é o statement id fixo da permissão de invocação S3.
// Reutilizar o mesmo id torna o AddPermission idempotente entre execuções.
const InvokeStatementID = "AllowS3Invoke"

// DeploymentService orquestra o deploy da função e do gatilho S3.
type DeploymentService struct {
	IAMService     *IAMService
	CWLogsService  *CWLogsService
	TriggerService *TriggerService
	LambdaRepo     *repository.LambdaRepository
	AccountID      string
	Logger         *slog.Logger

	LogRetentionDays int32
}

// EnsureDeployment orquestra toda a criação ou atualização do recurso:
// role -> log group -> função -> permissão -> gatilho do bucket.
func (s *DeploymentService) EnsureDeployment(ctx context.Context, lc *dto.LambdaConfig, tc *dto.TriggerConfig, code []byte) (*dto.DeploymentState, error) {
	log := s.log()

	// 1. GARANTIR ROLE (ou usa a role informada)
	roleArn := lc.RoleArn
	roleName := roleArn
	roleManaged := false
	if roleArn == "" {
		arn, err := s.IAMService.EnsureRole(ctx, lc.FunctionName, lc.PolicyARNs)
		if err != nil {
			return nil, fmt.Errorf("IAM role setup failed: %w", err)
		}
		roleArn = arn
		roleName = ExecutionRoleName(lc.FunctionName)
		roleManaged = true
	}
	log.Info("execution role resolved", "role", roleArn, "managed", roleManaged)

	// 2. GARANTIR LOG GROUP
	retention := s.LogRetentionDays
	if retention == 0 {
		retention = 14
	}
	logGroup, err := s.CWLogsService.EnsureLogGroup(ctx, lc.FunctionName, retention)
	if err != nil {
		return nil, fmt.Errorf("log group setup failed: %w", err)
	}
	log.Info("log group ready", "log_group", logGroup)

	// 3. GARANTIR LAMBDA
	fnArn, err := s.LambdaRepo.EnsureFunction(ctx, lc, roleArn, code)
	if err != nil {
		return nil, fmt.Errorf("lambda function setup failed: %w", err)
	}
	log.Info("lambda function deployed", "function", lc.FunctionName, "arn", aws.ToString(fnArn))

	// 4. GARANTIR PERMISSÃO DE INVOCAÇÃO DO S3
	if err := s.LambdaRepo.AddInvokePermission(ctx, lc.FunctionName, InvokeStatementID, tc.BucketArn(), s.AccountID); err != nil {
		return nil, fmt.Errorf("lambda permission failed: %w", err)
	}
	log.Info("invoke permission granted", "statement_id", InvokeStatementID, "source", tc.BucketArn())

	// 5. GARANTIR GATILHO NO BUCKET
	if err := s.TriggerService.ConfigureBucketTrigger(ctx, tc, aws.ToString(fnArn)); err != nil {
		return nil, fmt.Errorf("bucket trigger setup failed: %w", err)
	}
	log.Info("bucket trigger configured", "bucket", tc.Bucket, "prefix", tc.Prefix, "suffix", tc.Suffix)

	// 6. Criar e retornar o estado final
	return &dto.DeploymentState{
		RoleName:     roleName,
		RoleManaged:  roleManaged,
		FunctionName: lc.FunctionName,
		FunctionArn:  fnArn,
		Bucket:       tc.Bucket,
		StatementID:  InvokeStatementID,
		LogGroup:     logGroup,
		PolicyARNs:   lc.PolicyARNs,
	}, nil
}

// DeleteDeployment desfaz o deploy: gatilho, permissão, função, log group e,
// quando pedido, a execution role gerenciada. Erros são acumulados para que
// uma falha parcial não impeça o restante da limpeza.
func (s *DeploymentService) DeleteDeployment(ctx context.Context, functionName, bucket string, deleteRole bool) error {
	var errs []error

	// 1. Retirar o gatilho do bucket (para o fluxo de eventos primeiro)
	fn, err := s.LambdaRepo.GetFunction(ctx, functionName)
	if err != nil {
		errs = append(errs, fmt.Errorf("function lookup failed: %w", err))
	}
	if fn != nil && fn.FunctionArn != nil {
		if terr := s.TriggerService.RemoveBucketTrigger(ctx, bucket, *fn.FunctionArn); terr != nil {
			errs = append(errs, fmt.Errorf("bucket trigger removal failed: %w", terr))
		}
	}

	// 2. Remover permissão (não falha em erro)
	s.LambdaRepo.RemovePermission(ctx, functionName, InvokeStatementID)

	// 3. Deletar Lambda
	if err := s.LambdaRepo.DeleteFunction(ctx, functionName); err != nil {
		errs = append(errs, fmt.Errorf("lambda deletion failed: %w", err))
	}

	// 4. Deletar a execution role gerenciada
	if deleteRole {
		if err := s.IAMService.DeleteRoleAndPolicies(ctx, ExecutionRoleName(functionName), nil); err != nil {
			errs = append(errs, fmt.Errorf("IAM role deletion failed: %w", err))
		}
	}

	// 5. Deletar Log Group (não falha em erro)
	s.CWLogsService.CWLogsRepo.DeleteLogGroup(ctx, fmt.Sprintf("/aws/lambda/%s", functionName))

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors during deletion: %v", errs)
	}
	return nil
}

func (s *DeploymentService) log() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
