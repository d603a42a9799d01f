package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	dto "github.com/captavi/lambda-s3-deploy/pkg/types"
)

// LambdaRepository encapsula operações CRUD da AWS Lambda.
type LambdaRepository struct {
	Client LambdaAPI
}

// GetFunction busca uma função Lambda. Retorna nil se não for encontrada.
func (r *LambdaRepository) GetFunction(ctx context.Context, functionName string) (*types.FunctionConfiguration, error) {
	out, err := r.Client.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(functionName)})
	if err != nil {
		if isAPIErrorCode(err, "ResourceNotFoundException") {
			return nil, nil
		}
		return nil, fmt.Errorf("GetFunction failed: %w", err)
	}
	return out.Configuration, nil
}

// EnsureFunction cria ou atualiza a função Lambda com o pacote de código
// fornecido. Toda chamada publica uma nova versão.
func (r *LambdaRepository) EnsureFunction(ctx context.Context, lc *dto.LambdaConfig, roleArn string, code []byte) (*string, error) {
	rt := mapRuntime(lc.Runtime)

	got, err := r.GetFunction(ctx, lc.FunctionName)
	if err != nil {
		return nil, err
	}

	if got != nil {
		// Função existe: faz o UPDATE (código, depois configuração)
		if err := r.updateFunctionCode(ctx, lc.FunctionName, code); err != nil {
			return nil, err
		}
		if err := r.updateFunctionConfiguration(ctx, lc, roleArn, rt); err != nil {
			return nil, err
		}

		// Aguarda o status Ativo/Atualizado
		if werr := r.waitForActive(ctx, lc.FunctionName); werr != nil {
			return nil, werr
		}
		return got.FunctionArn, nil
	}

	// Função não existe: faz o CREATE
	result, cerr := r.Client.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: aws.String(lc.FunctionName),
		Role:         aws.String(roleArn),
		Handler:      aws.String(lc.Handler),
		Runtime:      rt,
		Code:         &types.FunctionCode{ZipFile: code},
		MemorySize:   aws.Int32(lc.MemorySize),
		Timeout:      aws.Int32(lc.Timeout),
		Publish:      true,
		Environment: &types.Environment{
			Variables: lc.Environment,
		},
	})

	if cerr != nil {
		// Corrida create/create: outro ator criou primeiro, relê o ARN.
		if isAPIErrorCode(cerr, "ResourceConflictException") {
			g2, _ := r.GetFunction(ctx, lc.FunctionName)
			if g2 != nil {
				return g2.FunctionArn, nil
			}
		}
		return nil, fmt.Errorf("CreateFunction failed: %w", cerr)
	}

	if werr := r.waitForActive(ctx, lc.FunctionName); werr != nil {
		return nil, werr
	}

	if result.FunctionArn != nil {
		return result.FunctionArn, nil
	}
	return nil, fmt.Errorf("lambda created but ARN not available")
}

// AddInvokePermission adiciona permissão de invocação para o serviço S3.
// Chamadas repetidas com o mesmo statement id são tratadas como sucesso.
func (r *LambdaRepository) AddInvokePermission(ctx context.Context, functionName, statementID, sourceArn, sourceAccount string) error {
	in := &lambda.AddPermissionInput{
		FunctionName: aws.String(functionName),
		StatementId:  aws.String(statementID),
		Action:       aws.String("lambda:InvokeFunction"),
		Principal:    aws.String("s3.amazonaws.com"),
		SourceArn:    aws.String(sourceArn),
	}
	// O bucket ARN não carrega account id; o SourceAccount garante que o
	// bucket pertence à conta do deploy.
	if sourceAccount != "" {
		in.SourceAccount = aws.String(sourceAccount)
	}

	_, err := r.Client.AddPermission(ctx, in)
	if err != nil && !isAPIErrorCode(err, "ResourceConflictException") {
		return fmt.Errorf("AddPermission failed: %w", err)
	}
	return nil
}

// RemovePermission remove a permissão de invocação.
func (r *LambdaRepository) RemovePermission(ctx context.Context, functionName, statementID string) error {
	_, err := r.Client.RemovePermission(ctx, &lambda.RemovePermissionInput{
		FunctionName: aws.String(functionName),
		StatementId:  aws.String(statementID),
	})
	if err != nil && !isAPIErrorCode(err, "ResourceNotFoundException") {
		return fmt.Errorf("RemovePermission failed: %w", err)
	}
	return nil
}

// DeleteFunction deleta a Lambda.
func (r *LambdaRepository) DeleteFunction(ctx context.Context, functionName string) error {
	_, err := r.Client.DeleteFunction(ctx, &lambda.DeleteFunctionInput{
		FunctionName: aws.String(functionName),
	})
	if err != nil && !isAPIErrorCode(err, "ResourceNotFoundException") {
		return fmt.Errorf("DeleteFunction failed: %w", err)
	}
	return nil
}

// --- Métodos Privados ---

func (r *LambdaRepository) updateFunctionConfiguration(ctx context.Context, lc *dto.LambdaConfig, roleArn string, rt types.Runtime) error {
	_, uerr := r.Client.UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
		FunctionName: aws.String(lc.FunctionName),
		Role:         aws.String(roleArn),
		Handler:      aws.String(lc.Handler),
		Runtime:      rt,
		MemorySize:   aws.Int32(lc.MemorySize),
		Timeout:      aws.Int32(lc.Timeout),
		Environment: &types.Environment{
			Variables: lc.Environment,
		},
	})
	if uerr != nil {
		return fmt.Errorf("failed to update lambda configuration: %w", uerr)
	}
	return nil
}

func (r *LambdaRepository) updateFunctionCode(ctx context.Context, functionName string, code []byte) error {
	_, upCodeErr := r.Client.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(functionName),
		ZipFile:      code,
		Publish:      true,
	})
	if upCodeErr != nil {
		return fmt.Errorf("failed to update lambda code: %w", upCodeErr)
	}
	return nil
}

func (r *LambdaRepository) waitForActive(ctx context.Context, functionName string) error {
	waiter := lambda.NewFunctionActiveWaiter(r.Client)

	waiterErr := waiter.Wait(ctx, &lambda.GetFunctionConfigurationInput{FunctionName: aws.String(functionName)}, 30*time.Second)
	if waiterErr != nil {
		// A atualização pode já ter concluído entre tentativas do waiter;
		// uma checagem final decide se o timeout importa.
		if _, checkErr := r.GetFunction(ctx, functionName); checkErr != nil {
			return fmt.Errorf("function update wait failed and final check failed: %w", checkErr)
		}
	}
	return nil
}

func mapRuntime(runtime string) types.Runtime {
	switch strings.ToLower(strings.TrimSpace(runtime)) {
	case "provided.al2", "providedal2":
		return types.RuntimeProvidedal2
	case "provided.al2023", "providedal2023":
		return types.RuntimeProvidedal2023
	case "python3.12":
		return types.RuntimePython312
	case "nodejs20.x":
		return types.RuntimeNodejs20x
	default:
		return types.Runtime(runtime)
	}
}
